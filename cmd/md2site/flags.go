package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds flags that shape every generated page.
type renderFlags struct {
	template  string // Name or path of the page template
	style     string // Name, path or raw CSS
	noStyle   bool
	assetPath string // Override asset directory
	engine    string
	basePath  string
}

// pdfFlags holds PDF export flags.
type pdfFlags struct {
	enabled bool
	timeout string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	render  renderFlags
	pdf     pdfFlags
	content string
	static  string
	output  string
	workers int
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common commonFlags
	render renderFlags
	pdf    pdfFlags
	output string
}

// initFlags holds flags for the init command.
type initFlags struct {
	output string
	force  bool
	quiet  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addRenderFlags adds page rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.template, "template", "", "page template name or file path")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVarP(&f.engine, "engine", "e", "", "markdown engine: native, commonmark")
	fs.StringVar(&f.basePath, "base-path", "", "URL prefix for root-relative links (e.g. /blog)")
}

// addPDFFlags adds PDF export flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.BoolVar(&f.enabled, "pdf", false, "also render each page to PDF")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF page load timeout (e.g., 30s, 2m)")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	f := &buildFlags{}

	fs.StringVar(&f.content, "content", "", "markdown source directory")
	fs.StringVar(&f.static, "static", "", "static files directory")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (removed before each build)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addPDFFlags(fs, &f.pdf)

	fs.SetOutput(usage)
	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return f, fs.Args(), nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default: stdout)")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addPDFFlags(fs, &f.pdf)

	fs.SetOutput(usage)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string, usage io.Writer) (*initFlags, []string, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	f := &initFlags{}

	fs.StringVarP(&f.output, "output", "o", defaultInitConfigPath, "config file to create")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing config file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")

	fs.SetOutput(usage)
	fs.Usage = func() { printInitUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return f, fs.Args(), nil
}
