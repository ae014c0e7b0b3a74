package md2site

import (
	"time"

	"github.com/alnah/go-md2site/internal/pipeline"
)

// Rendering engines accepted by WithEngine.
const (
	EngineNative     = pipeline.EngineNative
	EngineCommonMark = pipeline.EngineCommonMark
)

// defaultTimeout bounds page load during PDF rendering.
const defaultTimeout = 30 * time.Second

// Input contains the page to convert.
type Input struct {
	Markdown string // Page source, starting with a "# Title" line
	CSS      string // Extra CSS appended after the converter style
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	Title string // Text of the first-line heading
	Body  string // Rendered Markdown, before template substitution
	HTML  []byte // Complete page
	PDF   []byte // nil unless PDF export is enabled
}

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout          time.Duration
	engine           string
	templateInput    string // path, raw template or asset name
	resolvedTemplate string
	styleInput       string // path, raw CSS or asset name
	resolvedStyle    string
	basePath         string // normalized
	assetPath        string
	pdf              bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithTimeout sets the page load timeout for PDF rendering.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2site: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the Markdown engine: EngineNative (default) or
// EngineCommonMark.
func WithEngine(engine string) Option {
	return func(c *Converter) {
		c.cfg.engine = engine
	}
}

// WithTemplate sets the page template.
// Accepts a file path (contains / or \), raw template content (contains
// "{{"), or the name of an asset template ("default").
func WithTemplate(template string) Option {
	return func(c *Converter) {
		c.cfg.templateInput = template
	}
}

// WithStyle sets the stylesheet injected into every page.
// Accepts a file path (contains / or \), raw CSS (contains {), or the
// name of an asset style ("default", "minimal").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithBasePath prefixes root-relative link and image URLs, for sites
// served from a sub-path such as "/blog".
func WithBasePath(basePath string) Option {
	return func(c *Converter) {
		c.cfg.basePath = basePath
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ override the
// built-in assets. Missing assets fall back to the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithPDF enables rendering every page to PDF with headless Chrome.
func WithPDF(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.pdf = enabled
	}
}
