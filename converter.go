package md2site

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.Preprocessor)(nil)
	_ pipeline.StyleInjector        = (*pipeline.StyleInjection)(nil)
	_ pdfConverter                  = (*rodConverter)(nil)
	_ pdfRenderer                   = (*rodRenderer)(nil)
)

// templateMarker tells raw template content apart from names and paths.
const templateMarker = "{{"

// Converter orchestrates the Markdown to HTML page pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter is not safe for concurrent use; use ConverterPool for parallel work.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	styleInjector pipeline.StyleInjector
	pdfConverter  pdfConverter // nil unless PDF export is enabled
}

// NewConverter creates a Converter with the native engine and the built-in
// page template. Use options to customize behavior.
// Returns error if an option value is invalid or an asset cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           converterConfig{timeout: defaultTimeout},
		assetLoader:   assets.NewEmbeddedLoader(),
		preprocessor:  &pipeline.Preprocessor{},
		styleInjector: &pipeline.StyleInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if c.htmlConverter == nil {
		conv, err := pipeline.NewHTMLConverter(c.cfg.engine)
		if err != nil {
			return nil, err
		}
		c.htmlConverter = conv
	}

	basePath, err := pipeline.NormalizeBasePath(c.cfg.basePath)
	if err != nil {
		return nil, err
	}
	c.cfg.basePath = basePath

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if err := c.resolveTemplate(); err != nil {
		return nil, err
	}

	if c.cfg.pdf && c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the pipeline on a single page.
// Content errors (tokenization, rendering, missing title) wrap the
// matching sentinel and no partial page is returned.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	body, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	title, err := pipeline.ExtractTitle(mdContent)
	if err != nil {
		return nil, err
	}

	page := pipeline.InjectTemplate(c.cfg.resolvedTemplate, title, body)

	page, err = pipeline.RewriteBasePath(page, c.cfg.basePath)
	if err != nil {
		return nil, fmt.Errorf("rewriting base path: %w", err)
	}

	css := c.cfg.resolvedStyle
	if input.CSS != "" {
		css = strings.TrimSpace(css + "\n" + input.CSS)
	}
	page = c.styleInjector.InjectStyle(ctx, page, css)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &ConvertResult{
		Title: title,
		Body:  body,
		HTML:  []byte(page),
	}

	if c.pdfConverter == nil {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes

	return res, nil
}

// Close releases resources (headless Chrome browser, if one was started).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// resolveTemplate resolves the template input (path, content, or name) and
// checks it has a {{ Content }} placeholder.
func (c *Converter) resolveTemplate() error {
	input := c.cfg.templateInput
	if input == "" {
		input = assets.DefaultTemplateName
	}

	var tmpl string
	switch {
	case strings.Contains(input, templateMarker):
		tmpl = input
	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading template file %q: %w", input, err)
		}
		tmpl = string(content)
	default:
		content, err := c.assetLoader.LoadTemplate(input)
		if err != nil {
			return fmt.Errorf("loading template %q: %w", input, err)
		}
		tmpl = content
	}

	if err := pipeline.ValidateTemplate(tmpl); err != nil {
		return fmt.Errorf("template %q: %w", shortName(input), err)
	}
	c.cfg.resolvedTemplate = tmpl
	return nil
}

// shortName keeps raw template content out of error messages.
func shortName(input string) string {
	if strings.Contains(input, templateMarker) {
		return "<inline>"
	}
	return input
}
