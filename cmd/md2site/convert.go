package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// Sentinel errors for the convert command.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrPDFNeedsOutput   = errors.New("--pdf requires --output")
)

// runConvert converts a single page, writing it to --output or stdout.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	switch {
	case len(positional) == 0:
		return ErrNoInput
	case len(positional) > 1:
		return fmt.Errorf("%w: %v (convert takes one file)", ErrUnexpectedArgs, positional[1:])
	}
	input := positional[0]
	if !fileutil.IsMarkdown(input) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(input))
	}

	verbose := flags.common.verbose && !flags.common.quiet

	cfg, err := loadConfig(flags.common.config, verbose, env)
	if err != nil {
		return err
	}
	mergeRenderFlags(&flags.render, &flags.pdf, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.PDF.Enabled && flags.output == "" {
		return ErrPDFNeedsOutput
	}

	opts, err := converterOptions(cfg, verbose, env.Stderr)
	if err != nil {
		return err
	}

	conv, err := md2site.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	if flags.output == "" {
		return convertToWriter(ctx, conv, input, env)
	}

	result := convertPage(ctx, conv, Page{Source: input, Dest: flags.output})
	printResults([]PageResult{result}, flags.common.quiet, verbose, env)
	if result.Err != nil {
		return collectFailures([]PageResult{result})
	}
	return nil
}

// convertToWriter prints the page to stdout.
func convertToWriter(ctx context.Context, conv PageConverter, input string, env *Environment) error {
	content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	res, err := conv.Convert(ctx, md2site.Input{Markdown: string(content)})
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	if _, err := env.Stdout.Write(res.HTML); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteHTML, err)
	}
	return nil
}
