// Package md2site converts Markdown pages into complete HTML pages.
//
// # Quick Start
//
// Create a converter, convert a page, and close when done:
//
//	conv, err := md2site.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2site.Input{
//	    Markdown: "# Hello\n\nSome **bold** text.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", result.HTML, 0644)
//
// Every page must start with a "# Title" line. The title fills the
// {{ Title }} placeholder of the page template and the rendered body fills
// {{ Content }}.
//
// # Conversion Pipeline
//
//  1. Line ending normalization
//  2. Markdown to HTML body, with the native engine (default) or goldmark
//  3. Title extraction and template substitution
//  4. Base path rewriting of root-relative links and images (optional)
//  5. Stylesheet injection (optional)
//  6. PDF rendering via headless Chrome (optional)
//
// # Engines
//
// The native engine supports a small dialect: headings, fenced code,
// quotes, flat lists and paragraphs, with **bold**, *italic*, `code`,
// links and images inside them. Nested styles are not supported and
// unbalanced delimiters are errors. Use WithEngine(EngineCommonMark) for
// full CommonMark with GitHub extensions and highlighted code blocks.
//
// # Configuration
//
//	conv, err := md2site.NewConverter(
//	    md2site.WithTemplate("./layout.html"),
//	    md2site.WithStyle("minimal"),
//	    md2site.WithBasePath("/blog"),
//	)
//
// # Parallel Processing
//
// ConverterPool hands out converters to concurrent workers:
//
//	pool := md2site.NewConverterPool(4, md2site.WithStyle("default"))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # PDF Export
//
// WithPDF(true) also renders every page with Chrome/Chromium. The go-rod
// library downloads a managed Chromium on first run. Set ROD_NO_SANDBOX=1
// in containers and ROD_BROWSER_BIN to use a custom binary.
package md2site
