package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// SpanKind identifies what an inline span represents.
type SpanKind uint8

const (
	SpanPlain SpanKind = iota
	SpanBold
	SpanItalic
	SpanCode
	SpanLink
	SpanImage
)

func (k SpanKind) String() string {
	switch k {
	case SpanPlain:
		return "plain"
	case SpanBold:
		return "bold"
	case SpanItalic:
		return "italic"
	case SpanCode:
		return "code"
	case SpanLink:
		return "link"
	case SpanImage:
		return "image"
	default:
		return fmt.Sprintf("SpanKind(%d)", uint8(k))
	}
}

// Span is an atomic piece of inline text.
// URL is only meaningful for SpanLink and SpanImage.
type Span struct {
	Text string
	Kind SpanKind
	URL  string
}

// Plain returns a plain text span.
func Plain(text string) Span {
	return Span{Text: text, Kind: SpanPlain}
}

// delimiterRule pairs an emphasis marker with the span kind it produces.
type delimiterRule struct {
	delimiter string
	kind      SpanKind
}

// delimiterRules run in order: "**" must be consumed before "*".
var delimiterRules = []delimiterRule{
	{delimiter: "**", kind: SpanBold},
	{delimiter: "*", kind: SpanItalic},
	{delimiter: "`", kind: SpanCode},
}

var (
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
)

// Tokenize splits text into spans: bold, then italic, then code, then images,
// then links. Text without any markup yields a single plain span.
func Tokenize(text string) ([]Span, error) {
	spans := []Span{Plain(text)}

	var err error
	for _, rule := range delimiterRules {
		spans, err = SplitDelimiter(spans, rule.delimiter, rule.kind)
		if err != nil {
			return nil, err
		}
	}

	spans = SplitImages(spans)
	spans = SplitLinks(spans)
	return spans, nil
}

// SplitDelimiter splits every plain span containing delimiter into plain and
// kind spans. A split must yield groups of three parts with the delimited
// text at index 1 of each group; any other count is unbalanced. Spans of
// other kinds are passed through unchanged.
func SplitDelimiter(spans []Span, delimiter string, kind SpanKind) ([]Span, error) {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Kind != SpanPlain || !strings.Contains(s.Text, delimiter) {
			out = append(out, s)
			continue
		}

		parts := strings.Split(s.Text, delimiter)
		if len(parts)%3 != 0 {
			return nil, fmt.Errorf("%w: %w: %q in %q", ErrTokenization, ErrUnbalancedDelimiter, delimiter, s.Text)
		}

		for i, part := range parts {
			inside := i%3 == 1
			if part == "" {
				if inside {
					return nil, fmt.Errorf("%w: %w: %q in %q", ErrTokenization, ErrEmptyDelimited, delimiter, s.Text)
				}
				continue
			}
			if inside {
				out = append(out, Span{Text: part, Kind: kind})
			} else {
				out = append(out, Plain(part))
			}
		}
	}
	return out, nil
}

// Reference is a caption/URL pair found by ExtractImages or ExtractLinks.
type Reference struct {
	Text string
	URL  string
}

// ExtractImages returns every ![caption](url) in text, left to right.
func ExtractImages(text string) []Reference {
	return extract(imagePattern, text, false)
}

// ExtractLinks returns every [text](url) in text that is not an image.
func ExtractLinks(text string) []Reference {
	return extract(linkPattern, text, true)
}

// SplitImages replaces image markup in plain spans with image spans.
func SplitImages(spans []Span) []Span {
	return splitPattern(spans, imagePattern, SpanImage, false)
}

// SplitLinks replaces link markup in plain spans with link spans.
// A bracket pair directly preceded by '!' is never treated as a link.
func SplitLinks(spans []Span) []Span {
	return splitPattern(spans, linkPattern, SpanLink, true)
}

func extract(re *regexp.Regexp, text string, skipBang bool) []Reference {
	var refs []Reference
	for _, m := range matches(re, text, skipBang) {
		refs = append(refs, Reference{Text: text[m[2]:m[3]], URL: text[m[4]:m[5]]})
	}
	return refs
}

func splitPattern(spans []Span, re *regexp.Regexp, kind SpanKind, skipBang bool) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Kind != SpanPlain {
			out = append(out, s)
			continue
		}

		found := matches(re, s.Text, skipBang)
		if len(found) == 0 {
			out = append(out, s)
			continue
		}

		pos := 0
		for _, m := range found {
			if m[0] > pos {
				out = append(out, Plain(s.Text[pos:m[0]]))
			}
			out = append(out, Span{Text: s.Text[m[2]:m[3]], Kind: kind, URL: s.Text[m[4]:m[5]]})
			pos = m[1]
		}
		if pos < len(s.Text) {
			out = append(out, Plain(s.Text[pos:]))
		}
	}
	return out
}

// matches returns submatch indices for re in text. With skipBang set, matches
// whose opening bracket follows '!' are dropped.
func matches(re *regexp.Regexp, text string, skipBang bool) [][]int {
	all := re.FindAllStringSubmatchIndex(text, -1)
	if !skipBang {
		return all
	}
	kept := all[:0]
	for _, m := range all {
		if m[0] > 0 && text[m[0]-1] == '!' {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}
