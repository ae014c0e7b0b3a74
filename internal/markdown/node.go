package markdown

import (
	"fmt"
	"strings"
)

// Node is an HTML node. The only implementations are *Leaf and *Parent.
type Node interface {
	Render() (string, error)
	node()
}

// Attribute is a single HTML attribute.
type Attribute struct {
	Key   string
	Value string
}

// Attributes keeps attributes in insertion order, which is also render order.
type Attributes []Attribute

// Attrs builds Attributes from alternating keys and values.
// A trailing key without a value is ignored.
func Attrs(kv ...string) Attributes {
	attrs := make(Attributes, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, Attribute{Key: kv[i], Value: kv[i+1]})
	}
	return attrs
}

// Get returns the value of the first attribute named key.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// String renders the attributes as ` key="value"` pairs. Values are not escaped.
func (a Attributes) String() string {
	var b strings.Builder
	a.writeTo(&b)
	return b.String()
}

func (a Attributes) writeTo(b *strings.Builder) {
	for _, attr := range a {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(attr.Value)
		b.WriteByte('"')
	}
}

// Leaf is a node without children: raw text when Tag is empty, otherwise a
// single element wrapping Value. An "img" leaf renders as a void element.
type Leaf struct {
	Tag   string
	Value string
	Attrs Attributes
}

// Text returns a raw text leaf.
func Text(value string) *Leaf {
	return &Leaf{Value: value}
}

func (*Leaf) node() {}

// Render returns the HTML for the leaf.
func (l *Leaf) Render() (string, error) {
	var b strings.Builder
	if err := write(&b, l); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Parent is an element owning an ordered list of children.
type Parent struct {
	Tag      string
	Children []Node
	Attrs    Attributes
}

// NewParent returns a parent element without attributes.
func NewParent(tag string, children ...Node) *Parent {
	return &Parent{Tag: tag, Children: children}
}

func (*Parent) node() {}

// Render returns the HTML for the element and its whole subtree.
func (p *Parent) Render() (string, error) {
	var b strings.Builder
	if err := write(&b, p); err != nil {
		return "", err
	}
	return b.String(), nil
}

// write renders n into b. Nothing written to b is meaningful once an error
// is returned.
func write(b *strings.Builder, n Node) error {
	switch n := n.(type) {
	case *Leaf:
		switch {
		case n.Tag == "":
			b.WriteString(n.Value)
		case n.Tag == "img":
			b.WriteString("<img")
			n.Attrs.writeTo(b)
			b.WriteByte('>')
		case n.Value == "":
			return fmt.Errorf("%w: %w: <%s>", ErrRender, ErrMissingValue, n.Tag)
		default:
			openTag(b, n.Tag, n.Attrs)
			b.WriteString(n.Value)
			closeTag(b, n.Tag)
		}
		return nil

	case *Parent:
		if n.Tag == "" {
			return fmt.Errorf("%w: %w", ErrRender, ErrMissingTag)
		}
		if len(n.Children) == 0 {
			return fmt.Errorf("%w: %w: <%s>", ErrRender, ErrNoChildren, n.Tag)
		}
		openTag(b, n.Tag, n.Attrs)
		for _, child := range n.Children {
			if err := write(b, child); err != nil {
				return err
			}
		}
		closeTag(b, n.Tag)
		return nil

	default:
		return fmt.Errorf("%w: unsupported node %T", ErrRender, n)
	}
}

func openTag(b *strings.Builder, tag string, attrs Attributes) {
	b.WriteByte('<')
	b.WriteString(tag)
	attrs.writeTo(b)
	b.WriteByte('>')
}

func closeTag(b *strings.Builder, tag string) {
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
}

// SpanToNode maps an inline span to the leaf that renders it.
func SpanToNode(s Span) (Node, error) {
	switch s.Kind {
	case SpanPlain:
		return Text(s.Text), nil
	case SpanBold:
		return &Leaf{Tag: "b", Value: s.Text}, nil
	case SpanItalic:
		return &Leaf{Tag: "i", Value: s.Text}, nil
	case SpanCode:
		return &Leaf{Tag: "code", Value: s.Text}, nil
	case SpanLink:
		return &Leaf{Tag: "a", Value: s.Text, Attrs: Attrs("href", s.URL)}, nil
	case SpanImage:
		return &Leaf{Tag: "img", Attrs: Attrs("href", s.URL, "alt", s.Text)}, nil
	default:
		return nil, fmt.Errorf("%w: %w: %v", ErrRender, ErrUnknownSpanKind, s.Kind)
	}
}

// InlineNodes tokenizes text and maps every span to a node.
func InlineNodes(text string) ([]Node, error) {
	spans, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(spans))
	for _, s := range spans {
		n, err := SpanToNode(s)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
