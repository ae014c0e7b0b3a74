package main

import (
	"context"
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/hints"
)

// Exit codes for md2site CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitContent = 5 // Markdown that cannot be converted
)

// ErrUsage wraps command-line parsing errors.
var ErrUsage = errors.New("invalid usage")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2site.ErrBrowserConnect) ||
		errors.Is(err, md2site.ErrPageCreate) ||
		errors.Is(err, md2site.ErrPageLoad) ||
		errors.Is(err, md2site.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Markdown content errors (exit 5)
	if errors.Is(err, md2site.ErrTokenization) ||
		errors.Is(err, md2site.ErrRender) ||
		errors.Is(err, md2site.ErrTitleMissing) ||
		errors.Is(err, md2site.ErrEmptyMarkdown) ||
		errors.Is(err, md2site.ErrHTMLConversion) {
		return ExitContent
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrCopyStatic) ||
		errors.Is(err, ErrPrepareOutput) ||
		errors.Is(err, fileutil.ErrCopySource) ||
		errors.Is(err, ErrNoPages) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsafeOutputDir) ||
		errors.Is(err, ErrPDFNeedsOutput) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2site.ErrUnknownEngine) ||
		errors.Is(err, md2site.ErrInvalidBasePath) ||
		errors.Is(err, md2site.ErrTemplatePlaceholder) ||
		errors.Is(err, md2site.ErrStyleNotFound) ||
		errors.Is(err, md2site.ErrTemplateNotFound) ||
		errors.Is(err, md2site.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrInvalidAssetName) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2site.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, md2site.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, md2site.ErrTitleMissing):
		return hints.ForTitleMissing()
	case errors.Is(err, md2site.ErrTokenization):
		return hints.ForMarkdownSyntax()
	case errors.Is(err, md2site.ErrTemplatePlaceholder):
		return hints.ForTemplate()
	case errors.Is(err, md2site.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, ErrUnsafeOutputDir):
		return hints.ForUnsafeOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(config.DefaultConfigName))
	case errors.Is(err, ErrWriteHTML), errors.Is(err, ErrPrepareOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
