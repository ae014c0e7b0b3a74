package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// Sentinel errors for site layout checks.
var (
	ErrNoPages            = errors.New("no markdown files found")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrUnsafeOutputDir    = errors.New("refusing to use output directory")
)

// Page maps a Markdown source to the HTML file generated from it.
type Page struct {
	Source string
	Dest   string
}

// discoverPages finds every Markdown file under contentDir and maps it to
// the same relative path under outputDir with an .html extension.
// Pages are returned in lexical walk order.
func discoverPages(contentDir, outputDir string) ([]Page, error) {
	info, err := os.Stat(contentDir)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content directory: %s is not a directory", contentDir)
	}

	var pages []Page
	err = filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !d.Type().IsRegular() || !fileutil.IsMarkdown(path) {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		pages = append(pages, Page{
			Source: path,
			Dest:   filepath.Join(outputDir, fileutil.ReplaceExt(rel, ".html")),
		})
		return nil
	})

	return pages, err
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// checkOutputDir refuses output directories whose removal would destroy
// something else: the filesystem root, the home or working directory, or
// any directory equal to or containing one of the site's source trees.
func checkOutputDir(outputDir string, sources ...string) error {
	out, err := absClean(outputDir)
	if err != nil {
		return err
	}

	if filepath.Dir(out) == out {
		return fmt.Errorf("%w: %s is the filesystem root", ErrUnsafeOutputDir, outputDir)
	}
	if home, err := os.UserHomeDir(); err == nil && samePath(out, home) {
		return fmt.Errorf("%w: %s is the home directory", ErrUnsafeOutputDir, outputDir)
	}
	if wd, err := os.Getwd(); err == nil && samePath(out, wd) {
		return fmt.Errorf("%w: %s is the working directory", ErrUnsafeOutputDir, outputDir)
	}

	for _, src := range sources {
		if src == "" {
			continue
		}
		s, err := absClean(src)
		if err != nil {
			return err
		}
		if samePath(out, s) || isWithin(s, out) {
			return fmt.Errorf("%w: %s contains source directory %s", ErrUnsafeOutputDir, outputDir, src)
		}
	}
	return nil
}

func absClean(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// isWithin reports whether path lies strictly inside dir.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
