// Package pipeline implements the page conversion pipeline.
//
// A page goes through these stages:
//   - Markdown preprocessing (line ending normalization)
//   - Markdown to HTML body conversion, either with the native engine
//     (internal/markdown) or the CommonMark engine (goldmark)
//   - Title extraction and template substitution ({{ Title }}, {{ Content }})
//   - Optional stylesheet injection
//   - Optional base path rewriting for sites served from a sub-path
//
// PDF export of finished pages is handled by the root md2site package using
// headless Chrome (go-rod). This package only deals with text and HTML.
package pipeline
