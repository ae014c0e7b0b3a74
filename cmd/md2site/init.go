package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// defaultInitConfigPath is where init writes the config, matching the
// name build looks up without --config.
const defaultInitConfigPath = config.DefaultConfigName + ".yaml"

// starterPage seeds an empty content directory.
const starterPage = "# Welcome\n\nThis site was generated by **md2site**.\n\n- Edit `content/index.md`\n- Run `md2site build`\n"

// ErrConfigExists is returned when init would overwrite a config file.
var ErrConfigExists = errors.New("config file already exists")

// runInit writes a starter config with the default values and, when the
// content directory does not exist yet, a first page.
func runInit(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: %v (init takes no arguments)", ErrUnexpectedArgs, positional)
	}

	if fileutil.FileExists(flags.output) && !flags.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, flags.output)
	}

	cfg := config.DefaultConfig()
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(flags.output); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	// #nosec G306 -- config files are meant to be readable
	if err := os.WriteFile(flags.output, data, filePermissions); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}

	// Paths in the config are relative to where build runs, next to the config
	contentDir := filepath.Join(filepath.Dir(flags.output), cfg.Content.Dir)
	if fileutil.DirExists(contentDir) {
		return nil
	}
	if err := os.MkdirAll(contentDir, dirPermissions); err != nil {
		return fmt.Errorf("creating content directory: %w", err)
	}
	indexPath := filepath.Join(contentDir, "index.md")
	// #nosec G306 -- content files are meant to be readable
	if err := os.WriteFile(indexPath, []byte(starterPage), filePermissions); err != nil {
		return fmt.Errorf("writing starter page: %w", err)
	}
	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", indexPath)
	}

	return nil
}
