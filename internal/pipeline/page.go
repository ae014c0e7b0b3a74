package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Template placeholders, replaced literally.
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

const titleMarker = "# "

// Sentinel errors for page assembly.
var (
	ErrTitleMissing        = errors.New("document must start with a level 1 heading")
	ErrTemplatePlaceholder = errors.New("template missing placeholder")
)

// ExtractTitle returns the text after "# " on the first line. The text is
// kept as written, except that whitespace at the very end of the document
// is ignored.
func ExtractTitle(md string) (string, error) {
	if !strings.HasPrefix(md, titleMarker) {
		first, _, _ := strings.Cut(md, "\n")
		return "", fmt.Errorf("%w: first line is %q", ErrTitleMissing, first)
	}
	first, _, _ := strings.Cut(strings.TrimRightFunc(md, unicode.IsSpace), "\n")
	if len(first) < len(titleMarker) {
		return "", nil
	}
	return first[len(titleMarker):], nil
}

// InjectTemplate substitutes the first {{ Title }} and the first
// {{ Content }} in tmpl. Values are inserted as-is.
func InjectTemplate(tmpl, title, body string) string {
	page := strings.Replace(tmpl, TitlePlaceholder, title, 1)
	return strings.Replace(page, ContentPlaceholder, body, 1)
}

// ValidateTemplate checks that tmpl has somewhere to put the page body.
func ValidateTemplate(tmpl string) error {
	if !strings.Contains(tmpl, ContentPlaceholder) {
		return fmt.Errorf("%w: %s", ErrTemplatePlaceholder, ContentPlaceholder)
	}
	return nil
}

// RenderPage converts md with the native engine and fills tmpl with its
// title and body.
func RenderPage(md, tmpl string) (string, error) {
	return AssemblePage(context.Background(), &NativeConverter{}, md, tmpl)
}

// AssemblePage converts md with conv and fills tmpl with its title and body.
// Nothing is returned for a document that fails any stage.
func AssemblePage(ctx context.Context, conv HTMLConverter, md, tmpl string) (string, error) {
	body, err := conv.ToHTML(ctx, md)
	if err != nil {
		return "", err
	}
	title, err := ExtractTitle(md)
	if err != nil {
		return "", err
	}
	return InjectTemplate(tmpl, title, body), nil
}
