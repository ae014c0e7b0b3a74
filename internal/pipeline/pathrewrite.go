package pipeline

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidBasePath is returned for base paths that cannot prefix a URL path.
var ErrInvalidBasePath = errors.New("invalid base path")

// NormalizeBasePath returns basePath with exactly one leading slash and no
// trailing slash. An empty or "/" base path normalizes to "".
func NormalizeBasePath(basePath string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(basePath), "/")
	if trimmed == "" {
		return "", nil
	}
	if strings.ContainsAny(trimmed, `?#"<> \`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidBasePath, basePath)
	}
	for _, seg := range strings.Split(trimmed, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidBasePath, basePath)
		}
	}
	return "/" + trimmed, nil
}

// RewriteBasePath prefixes root-relative link and image URLs with basePath,
// so a site can be served from a sub-path. The HTML is returned unchanged
// when basePath is empty or "/".
//
// Rewrites:
//   - a[href], img[src] and img[href] starting with a single "/"
//
// Leaves alone:
//   - relative paths, anchors, and URLs with a scheme
//   - protocol-relative URLs ("//host/...")
//   - paths already under basePath
//
// Only rewritten tags are re-serialized, without escaping; every other byte
// of the input is copied as-is.
func RewriteBasePath(htmlContent, basePath string) (string, error) {
	base, err := NormalizeBasePath(basePath)
	if err != nil {
		return "", err
	}
	if base == "" {
		return htmlContent, nil
	}

	var buf strings.Builder
	buf.Grow(len(htmlContent) + 64)

	z := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("rewriting base path: %w", err)
			}
			return buf.String(), nil
		}

		raw := string(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			buf.WriteString(raw)
			continue
		}

		tag, ok := rewriteTag(z, tt, base)
		if !ok {
			buf.WriteString(raw)
			continue
		}
		buf.WriteString(tag)
	}
}

// rewriteTag rebuilds the current tag when one of its URL attributes needs
// the base prefix. It reports false when the tag is left as written.
func rewriteTag(z *html.Tokenizer, tt html.TokenType, base string) (string, bool) {
	name, hasAttr := z.TagName()
	if !hasAttr {
		return "", false
	}

	var keys []string
	switch atom.Lookup(name) {
	case atom.A:
		keys = []string{"href"}
	case atom.Img:
		keys = []string{"src", "href"}
	default:
		return "", false
	}

	var attrs []html.Attribute
	changed := false
	for more := true; more; {
		var key, val []byte
		key, val, more = z.TagAttr()
		attr := html.Attribute{Key: string(key), Val: string(val)}
		if slices.Contains(keys, attr.Key) && isRootRelative(attr.Val) && !isUnderBase(attr.Val, base) {
			attr.Val = base + attr.Val
			changed = true
		}
		attrs = append(attrs, attr)
	}
	if !changed {
		return "", false
	}

	var b strings.Builder
	b.WriteString("<")
	b.Write(name)
	for _, attr := range attrs {
		fmt.Fprintf(&b, ` %s="%s"`, attr.Key, attr.Val)
	}
	if tt == html.SelfClosingTagToken {
		b.WriteString(" /")
	}
	b.WriteString(">")
	return b.String(), true
}

// isRootRelative reports whether path starts with exactly one slash.
func isRootRelative(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//")
}

func isUnderBase(path, base string) bool {
	if !strings.HasPrefix(path, base) {
		return false
	}
	rest := path[len(base):]
	return rest == "" || strings.HasPrefix(rest, "/") || strings.HasPrefix(rest, "?") || strings.HasPrefix(rest, "#")
}
