package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for page conversion.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
	ErrWritePDF     = errors.New("failed to write PDF file")
)

// PageResult holds the outcome of a single page conversion.
type PageResult struct {
	Page     Page
	PDFPath  string // empty unless a PDF was written
	Err      error
	Duration time.Duration
}

// convertPages processes pages concurrently using the converter pool.
// Results keep the order of pages.
func convertPages(ctx context.Context, pool Pool, pages []Page) []PageResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(pages))

	results := make([]PageResult, len(pages))
	var wg sync.WaitGroup
	jobs := make(chan int, len(pages))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Another worker may still drain the queue
				for idx := range jobs {
					results[idx] = PageResult{Page: pages[idx], Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = PageResult{Page: pages[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = convertPage(ctx, conv, pages[idx])
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertPage reads one Markdown file and writes its HTML page, plus a
// sibling PDF when the converter produced one. Nothing is written for a
// page that fails to convert.
func convertPage(ctx context.Context, conv PageConverter, p Page) PageResult {
	start := time.Now()
	result := PageResult{Page: p}
	done := func(err error) PageResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(p.Source) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	res, err := conv.Convert(ctx, md2site.Input{Markdown: string(content)})
	if err != nil {
		return done(err)
	}

	if err := os.MkdirAll(filepath.Dir(p.Dest), dirPermissions); err != nil {
		return done(fmt.Errorf("%w: creating directory: %w", ErrWriteHTML, err))
	}

	// #nosec G306 -- site pages are meant to be readable
	if err := os.WriteFile(p.Dest, res.HTML, filePermissions); err != nil {
		return done(fmt.Errorf("%w: %w", ErrWriteHTML, err))
	}

	if res.PDF != nil {
		pdfPath := fileutil.ReplaceExt(p.Dest, ".pdf")
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(pdfPath, res.PDF, filePermissions); err != nil {
			return done(fmt.Errorf("%w: %w", ErrWritePDF, err))
		}
		result.PDFPath = pdfPath
	}

	return done(nil)
}

// pageFailures reports the failed pages of a build. It unwraps to every
// page error so exit codes reflect their causes.
type pageFailures struct {
	failed int
	total  int
	errs   []error
}

func (e *pageFailures) Error() string {
	return fmt.Sprintf("%d of %d page(s) failed", e.failed, e.total)
}

func (e *pageFailures) Unwrap() []error {
	return e.errs
}

// collectFailures returns a *pageFailures for the failed results, or nil.
func collectFailures(results []PageResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &pageFailures{failed: len(errs), total: len(results), errs: errs}
}

// printResults outputs per-page results and returns the failure count.
func printResults(results []PageResult, quiet, verbose bool, env *Environment) int {
	failed := 0

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Page.Source, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		outputs := r.Page.Dest
		if r.PDFPath != "" {
			outputs += ", " + r.PDFPath
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Page.Source, outputs, elapsed(r.Duration))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", outputs)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	return failed
}
