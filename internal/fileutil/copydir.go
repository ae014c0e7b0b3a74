package fileutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Permissions for mirrored trees.
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// ErrCopySource is returned when the source of a copy is not a directory.
var ErrCopySource = errors.New("copy source must be a directory")

// CopyDir mirrors src into dst. Any existing dst tree is removed first.
// Directories are recreated in walk order; regular files are copied
// concurrently by at most workers goroutines. Symlinks to regular files are
// copied as the files they point to; symlinks to directories are not
// followed, since the walk could loop. Other non-regular files are skipped.
// Returns the number of files copied.
func CopyDir(ctx context.Context, src, dst string, workers int) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCopySource, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrCopySource, src)
	}

	if err := os.RemoveAll(dst); err != nil {
		return 0, fmt.Errorf("removing %s: %w", dst, err)
	}
	if err := os.MkdirAll(dst, dirPermissions); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dst, err)
	}

	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	copied := 0
	walkErr := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := gctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			if rel == "." {
				return nil
			}
			return os.MkdirAll(target, dirPermissions)
		case d.Type().IsRegular(), d.Type()&fs.ModeSymlink != 0 && isRegularFile(path):
			copied++
			g.Go(func() error {
				return copyFile(gctx, path, target)
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return 0, err
	}
	if walkErr != nil {
		return 0, walkErr
	}
	return copied, nil
}

// isRegularFile reports whether path, after following symlinks, is a
// regular file.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func copyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := os.Open(src) // #nosec G304 -- path comes from walking the source tree
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions) // #nosec G304 -- path mirrors the source tree
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
