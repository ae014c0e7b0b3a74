package pipeline

// Notes:
// - GoldmarkConverter output is asserted with Contains: exact whitespace
//   between blocks belongs to goldmark, not to this package
// - The native engine is asserted byte for byte

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2site/internal/markdown"
)

// ---------------------------------------------------------------------------
// TestNewHTMLConverter - Engine selection
// ---------------------------------------------------------------------------

func TestNewHTMLConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		engine  string
		wantErr error
	}{
		{name: "empty selects native", engine: ""},
		{name: "native", engine: EngineNative},
		{name: "commonmark", engine: EngineCommonMark},
		{name: "unknown", engine: "pandoc", wantErr: ErrUnknownEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewHTMLConverter(tt.engine)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewHTMLConverter(%q) error = %v, want %v", tt.engine, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewHTMLConverter(%q) unexpected error: %v", tt.engine, err)
			}
			if conv == nil {
				t.Fatalf("NewHTMLConverter(%q) returned nil converter", tt.engine)
			}
		})
	}
}

func TestNewHTMLConverter_EmptyIsNative(t *testing.T) {
	t.Parallel()

	conv, err := NewHTMLConverter("")
	if err != nil {
		t.Fatalf("NewHTMLConverter() unexpected error: %v", err)
	}
	if _, ok := conv.(*NativeConverter); !ok {
		t.Errorf("NewHTMLConverter(\"\") = %T, want *NativeConverter", conv)
	}
}

// ---------------------------------------------------------------------------
// TestNativeConverter_ToHTML - Native engine
// ---------------------------------------------------------------------------

func TestNativeConverter_ToHTML(t *testing.T) {
	t.Parallel()

	got, err := (&NativeConverter{}).ToHTML(context.Background(), "# Title\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}
	want := "<div><h1>Title</h1><p>Some <b>bold</b> text.</p></div>"
	if got != want {
		t.Errorf("ToHTML() = %q, want %q", got, want)
	}
}

func TestNativeConverter_ToHTML_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		md      string
		wantErr error
	}{
		{name: "unbalanced delimiter", md: "# T\n\n*a**b", wantErr: markdown.ErrTokenization},
		{name: "empty document", md: "", wantErr: markdown.ErrRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := (&NativeConverter{}).ToHTML(context.Background(), tt.md)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ToHTML() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNativeConverter_ToHTML_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&NativeConverter{}).ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - CommonMark engine
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		md           string
		wantContains []string
	}{
		{
			name:         "heading gets an id",
			md:           "# Hello World",
			wantContains: []string{`<h1 id="hello-world">Hello World</h1>`},
		},
		{
			name:         "strong emphasis",
			md:           "Some **bold** text.",
			wantContains: []string{"<strong>bold</strong>"},
		},
		{
			name:         "GFM table",
			md:           "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "nested list",
			md:           "- a\n  - b",
			wantContains: []string{"<ul>\n<li>a\n<ul>"},
		},
		{
			name:         "fenced code is highlighted with classes",
			md:           "```go\nfunc main() {}\n```",
			wantContains: []string{`class="chroma"`},
		},
	}

	conv := NewGoldmarkConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.md)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, want to contain %q", got, want)
				}
			}
			if strings.Contains(got, "<html") {
				t.Errorf("ToHTML() = %q, want a fragment", got)
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
