package fileutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// writeTree creates files (relative path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// readTree returns every regular file under root keyed by slash path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	got := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		got[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read tree %s: %v", root, err)
	}
	return got
}

// ---------------------------------------------------------------------------
// TestCopyDir - Static tree mirroring
// ---------------------------------------------------------------------------

func TestCopyDir(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	files := map[string]string{
		"index.css":          "body {}",
		"images/logo.png":    "PNG",
		"images/icons/x.svg": "<svg/>",
		"fonts/a.woff2":      "font",
	}
	writeTree(t, src, files)

	dst := filepath.Join(t.TempDir(), "public")

	for _, workers := range []int{0, 1, 4} {
		n, err := fileutil.CopyDir(context.Background(), src, dst, workers)
		if err != nil {
			t.Fatalf("CopyDir(workers=%d) unexpected error: %v", workers, err)
		}
		if n != len(files) {
			t.Errorf("CopyDir(workers=%d) copied %d files, want %d", workers, n, len(files))
		}
		if diff := cmp.Diff(files, readTree(t, dst)); diff != "" {
			t.Errorf("CopyDir(workers=%d) tree mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestCopyDir_RemovesExistingDestination(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "new"})

	dst := t.TempDir()
	writeTree(t, dst, map[string]string{"stale.html": "old", "a.txt": "old"})

	if _, err := fileutil.CopyDir(context.Background(), src, dst, 2); err != nil {
		t.Fatalf("CopyDir() unexpected error: %v", err)
	}

	got := readTree(t, dst)
	if diff := cmp.Diff(map[string]string{"a.txt": "new"}, got); diff != "" {
		t.Errorf("CopyDir() tree mismatch (-want +got):\n%s", diff)
	}
}

func TestCopyDir_EmptyDirectoriesRecreated(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "empty", "nested"), 0o755); err != nil {
		t.Fatalf("failed to create dirs: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "out")
	n, err := fileutil.CopyDir(context.Background(), src, dst, 2)
	if err != nil {
		t.Fatalf("CopyDir() unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("CopyDir() copied %d files, want 0", n)
	}
	if !fileutil.DirExists(filepath.Join(dst, "empty", "nested")) {
		t.Error("CopyDir() did not recreate empty/nested")
	}
}

func TestCopyDir_Symlinks(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"shared.css": "body{}", "dir/inner.txt": "inner"})

	src := t.TempDir()
	writeTree(t, src, map[string]string{"index.txt": "index"})
	links := map[string]string{
		"style.css": filepath.Join(outside, "shared.css"),
		"linked":    filepath.Join(outside, "dir"),
		"dangling":  filepath.Join(outside, "missing.txt"),
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(src, name)); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
	}

	dst := filepath.Join(t.TempDir(), "out")
	n, err := fileutil.CopyDir(context.Background(), src, dst, 2)
	if err != nil {
		t.Fatalf("CopyDir() unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("CopyDir() copied %d files, want 2", n)
	}

	want := map[string]string{"index.txt": "index", "style.css": "body{}"}
	if diff := cmp.Diff(want, readTree(t, dst)); diff != "" {
		t.Errorf("CopyDir() tree mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Lstat(filepath.Join(dst, "style.css"))
	if err != nil {
		t.Fatalf("Lstat() unexpected error: %v", err)
	}
	if !info.Mode().IsRegular() {
		t.Errorf("style.css mode = %v, want a regular file", info.Mode())
	}
}

func TestCopyDir_SourceErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	writeTree(t, root, map[string]string{"file.txt": "x"})

	tests := []struct {
		name string
		src  string
	}{
		{name: "missing source", src: filepath.Join(root, "missing")},
		{name: "source is a file", src: file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dst := filepath.Join(t.TempDir(), "out")
			_, err := fileutil.CopyDir(context.Background(), tt.src, dst, 1)
			if !errors.Is(err, fileutil.ErrCopySource) {
				t.Errorf("CopyDir() error = %v, want ErrCopySource", err)
			}
			if fileutil.DirExists(dst) {
				t.Error("CopyDir() created destination despite source error")
			}
		})
	}
}

func TestCopyDir_MissingSourceWrapsNotExist(t *testing.T) {
	t.Parallel()

	_, err := fileutil.CopyDir(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir(), 1)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CopyDir() error = %v, want os.ErrNotExist", err)
	}
}

func TestCopyDir_ContextCancelled(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "1", "b": "2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fileutil.CopyDir(ctx, src, filepath.Join(t.TempDir(), "out"), 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CopyDir() error = %v, want context.Canceled", err)
	}
}

func TestCopyDir_DestinationIsMirror(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTree(t, src, map[string]string{"x/y/z.txt": "z", "top.txt": "t"})
	dst := filepath.Join(t.TempDir(), "mirror")

	if _, err := fileutil.CopyDir(context.Background(), src, dst, 3); err != nil {
		t.Fatalf("CopyDir() unexpected error: %v", err)
	}

	var keys []string
	for k := range readTree(t, dst) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if diff := cmp.Diff([]string{"top.txt", "x/y/z.txt"}, keys); diff != "" {
		t.Errorf("CopyDir() paths mismatch (-want +got):\n%s", diff)
	}
}
