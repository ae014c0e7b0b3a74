package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// loadConfig loads the config named by --config. Without the flag, a
// site.yaml in the current or user config directory is used when present,
// and defaults apply otherwise.
func loadConfig(name string, verbose bool, env *Environment) (*config.Config, error) {
	if name != "" {
		cfg, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(config.DefaultConfigName)
	if errors.Is(err, config.ErrConfigNotFound) {
		if verbose {
			fmt.Fprintln(env.Stderr, "No site config found, using defaults")
		}
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeRenderFlags merges rendering flags into config. CLI values override config values.
func mergeRenderFlags(f *renderFlags, p *pdfFlags, cfg *config.Config) {
	if f.template != "" {
		cfg.Template.Path = f.template
	}
	if f.style != "" {
		cfg.Style.Name = f.style
	}
	if f.noStyle {
		cfg.Style.Name = ""
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.engine != "" {
		cfg.Render.Engine = f.engine
	}
	if f.basePath != "" {
		cfg.Render.BasePath = f.basePath
	}
	if p.enabled {
		cfg.PDF.Enabled = true
	}
	if p.timeout != "" {
		cfg.PDF.Timeout = p.timeout
	}
}

// mergeBuildFlags merges build flags into config. CLI values override config values.
func mergeBuildFlags(f *buildFlags, cfg *config.Config) {
	if f.content != "" {
		cfg.Content.Dir = f.content
	}
	if f.static != "" {
		cfg.Static.Dir = f.static
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if f.workers != 0 {
		cfg.Build.Workers = f.workers
	}
	mergeRenderFlags(&f.render, &f.pdf, cfg)
}

// converterOptions translates a validated config into converter options.
// The default template path falls back to the built-in template when the
// file does not exist; any other missing path is an error at converter
// creation.
func converterOptions(cfg *config.Config, verbose bool, stderr io.Writer) ([]md2site.Option, error) {
	timeout, err := cfg.PDFTimeout()
	if err != nil {
		return nil, err
	}

	template := cfg.Template.Path
	if template == config.DefaultTemplatePath && !fileutil.FileExists(template) {
		if verbose {
			fmt.Fprintf(stderr, "No %s found, using built-in template\n", template)
		}
		template = ""
	}

	return []md2site.Option{
		md2site.WithEngine(cfg.Render.Engine),
		md2site.WithTemplate(template),
		md2site.WithStyle(cfg.Style.Name),
		md2site.WithBasePath(cfg.Render.BasePath),
		md2site.WithAssetPath(cfg.Assets.BasePath),
		md2site.WithPDF(cfg.PDF.Enabled),
		md2site.WithTimeout(timeout),
	}, nil
}

// elapsed formats a duration for verbose output.
func elapsed(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}
