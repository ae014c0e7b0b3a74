package assets

// Notes:
// - Built-in assets are checked for the placeholders the page assembler
//   relies on rather than for exact content
// - FilesystemLoader tests build their asset trees under t.TempDir()

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeAsset creates dir/sub/name with content, creating parents.
func writeAsset(t *testing.T, dir, sub, name, content string) {
	t.Helper()

	full := filepath.Join(dir, sub)
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", full, err)
	}
	if err := os.WriteFile(filepath.Join(full, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// ---------------------------------------------------------------------------
// TestValidateAssetName - Asset name safety
// ---------------------------------------------------------------------------

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{input: "default"},
		{input: "my-style"},
		{input: "my_style2"},
		{input: "", wantErr: true},
		{input: "path/to/style", wantErr: true},
		{input: `path\to\style`, wantErr: true},
		{input: "..", wantErr: true},
		{input: "style.css", wantErr: true},
		{input: "bad\x00name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Built-in assets
// ---------------------------------------------------------------------------

func TestLoadTemplate_Default(t *testing.T) {
	t.Parallel()

	tmpl, err := LoadTemplate(DefaultTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() unexpected error: %v", err)
	}
	for _, want := range []string{"{{ Title }}", "{{ Content }}", "</head>"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("default template missing %q", want)
		}
	}
}

func TestLoadStyle_Builtin(t *testing.T) {
	t.Parallel()

	for _, name := range []string{DefaultStyleName, "minimal"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			css, err := LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", name, err)
			}
			if !strings.Contains(css, "body") {
				t.Errorf("LoadStyle(%q) has no body rule", name)
			}
		})
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	got := StyleNames()
	if diff := cmp.Diff([]string{"default", "minimal"}, got); diff != "" {
		t.Errorf("StyleNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmbeddedLoader_Errors(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name    string
		load    func() (string, error)
		wantErr error
	}{
		{
			name:    "unknown style",
			load:    func() (string, error) { return loader.LoadStyle("nonexistent") },
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "unknown template",
			load:    func() (string, error) { return loader.LoadTemplate("nonexistent") },
			wantErr: ErrTemplateNotFound,
		},
		{
			name:    "traversal in style name",
			load:    func() (string, error) { return loader.LoadStyle("../default") },
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "traversal in template name",
			load:    func() (string, error) { return loader.LoadTemplate("../../etc/passwd") },
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tt.load(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader - Site asset directory
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(t.TempDir()); err != nil {
			t.Fatalf("NewFilesystemLoader() unexpected error: %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(""); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "missing")
		if _, err := NewFilesystemLoader(missing); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "", "file.txt", "x")
		if _, err := NewFilesystemLoader(filepath.Join(dir, "file.txt")); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "brand.css", "body { color: teal; }")
	writeAsset(t, dir, "templates", "post.html", "<h1>{{ Title }}</h1>{{ Content }}")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() unexpected error: %v", err)
	}

	t.Run("style", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadStyle("brand")
		if err != nil {
			t.Fatalf("LoadStyle() unexpected error: %v", err)
		}
		if got != "body { color: teal; }" {
			t.Errorf("LoadStyle() = %q", got)
		}
	})

	t.Run("template", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadTemplate("post")
		if err != nil {
			t.Fatalf("LoadTemplate() unexpected error: %v", err)
		}
		if got != "<h1>{{ Title }}</h1>{{ Content }}" {
			t.Errorf("LoadTemplate() = %q", got)
		}
	})

	t.Run("missing style", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("nope"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadTemplate("nope"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
	})
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeAsset(t, outside, "", "secret.css", "secret")

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "secret.css"), filepath.Join(dir, "styles", "escape.css")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() unexpected error: %v", err)
	}
	if _, err := loader.LoadStyle("escape"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle() error = %v, want ErrPathTraversal", err)
	}
}

// ---------------------------------------------------------------------------
// TestAssetResolver - Custom-first fallback
// ---------------------------------------------------------------------------

func TestAssetResolver(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "default.css", "/* custom default */")
	writeAsset(t, dir, "templates", "post.html", "{{ Content }}")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() unexpected error: %v", err)
	}
	if !resolver.HasCustomLoader() {
		t.Fatal("HasCustomLoader() = false, want true")
	}

	t.Run("custom overrides embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() unexpected error: %v", err)
		}
		if got != "/* custom default */" {
			t.Errorf("LoadStyle() = %q, want custom override", got)
		}
	})

	t.Run("falls back to embedded style", func(t *testing.T) {
		t.Parallel()

		want, _ := LoadStyle("minimal")
		got, err := resolver.LoadStyle("minimal")
		if err != nil {
			t.Fatalf("LoadStyle() unexpected error: %v", err)
		}
		if got != want {
			t.Error("LoadStyle() did not fall back to embedded minimal style")
		}
	})

	t.Run("custom template", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadTemplate("post")
		if err != nil {
			t.Fatalf("LoadTemplate() unexpected error: %v", err)
		}
		if got != "{{ Content }}" {
			t.Errorf("LoadTemplate() = %q", got)
		}
	})

	t.Run("falls back to embedded template", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadTemplate(DefaultTemplateName); err != nil {
			t.Errorf("LoadTemplate() unexpected error: %v", err)
		}
	})

	t.Run("validation errors are not fallen back", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadStyle("../default"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("not found anywhere", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
	})
}

func TestNewAssetResolver_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver() unexpected error: %v", err)
	}
	if resolver.HasCustomLoader() {
		t.Error("HasCustomLoader() = true, want false")
	}
	if _, err := resolver.LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle() unexpected error: %v", err)
	}
}

func TestNewAssetResolver_InvalidPath(t *testing.T) {
	t.Parallel()

	if _, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
	}
}
