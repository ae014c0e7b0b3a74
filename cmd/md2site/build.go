package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// Sentinel errors for the build command.
var (
	ErrUnexpectedArgs = errors.New("unexpected arguments")
	ErrCopyStatic     = errors.New("failed to copy static files")
	ErrPrepareOutput  = errors.New("failed to prepare output directory")
)

// runBuild generates the whole site: it recreates the output directory from
// the static tree, then converts every content page into it.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: %v (build takes no arguments)", ErrUnexpectedArgs, positional)
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	verbose := flags.common.verbose && !flags.common.quiet

	cfg, err := loadConfig(flags.common.config, verbose, env)
	if err != nil {
		return err
	}
	mergeBuildFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := converterOptions(cfg, verbose, env.Stderr)
	if err != nil {
		return err
	}

	configureMaxProcs(verbose, env)

	if err := checkOutputDir(cfg.Output.Dir, cfg.Content.Dir, cfg.Static.Dir); err != nil {
		return err
	}

	// Discover before touching the output tree so a bad content dir leaves it intact
	pages, err := discoverPages(cfg.Content.Dir, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("%w in %s", ErrNoPages, cfg.Content.Dir)
	}

	poolSize := md2site.ResolvePoolSize(cfg.Build.Workers)
	if verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := md2site.NewConverterPool(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	// Fail on bad templates or styles before the output tree is removed
	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	pool.Release(conv)

	start := env.Now()

	copied, err := prepareOutput(ctx, cfg, poolSize)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(env.Stderr, "Copied %d static file(s) to %s\n", copied, cfg.Output.Dir)
	}

	results := convertPages(ctx, &poolAdapter{pool: pool}, pages)
	printResults(results, flags.common.quiet, verbose, env)

	if verbose {
		fmt.Fprintf(env.Stderr, "Built %d page(s) in %v\n", len(pages), elapsed(env.Now().Sub(start)))
	}

	return collectFailures(results)
}

// prepareOutput mirrors the static tree into a fresh output directory.
// Without a static directory the output directory is only recreated empty.
func prepareOutput(ctx context.Context, cfg *config.Config, workers int) (int, error) {
	if fileutil.DirExists(cfg.Static.Dir) {
		n, err := fileutil.CopyDir(ctx, cfg.Static.Dir, cfg.Output.Dir, workers)
		if err != nil {
			return n, fmt.Errorf("%w: %w", ErrCopyStatic, err)
		}
		return n, nil
	}

	if err := os.RemoveAll(cfg.Output.Dir); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPrepareOutput, err)
	}
	if err := os.MkdirAll(cfg.Output.Dir, dirPermissions); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPrepareOutput, err)
	}
	return 0, nil
}

// configureMaxProcs sets GOMAXPROCS from the container CPU quota, logging
// the adjustment only in verbose mode.
func configureMaxProcs(verbose bool, env *Environment) {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}
