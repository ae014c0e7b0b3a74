package pipeline

import (
	"context"
	"strings"
)

// StyleInjector adds a stylesheet to an assembled page.
type StyleInjector interface {
	InjectStyle(ctx context.Context, page, css string) string
}

var _ StyleInjector = (*StyleInjection)(nil)

// StyleInjection embeds CSS as a <style> block.
type StyleInjection struct{}

// InjectStyle inserts css into page, in this order of preference: right
// before </head>, right after the opening <body> tag, or at the very start.
// The page is returned unchanged when css is empty or ctx is done.
func (s *StyleInjection) InjectStyle(ctx context.Context, page, css string) string {
	if css == "" || ctx.Err() != nil {
		return page
	}

	block := "<style>" + sanitizeCSS(css) + "</style>"
	lower := strings.ToLower(page)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return page[:idx] + block + page[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.IndexByte(page[idx:], '>'); end != -1 {
			pos := idx + end + 1
			return page[:pos] + block + page[pos:]
		}
	}

	return block + page
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
