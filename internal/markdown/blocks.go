package markdown

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockType is the structural kind of a block.
type BlockType uint8

const (
	BlockParagraph BlockType = iota
	BlockHeading
	BlockCode
	BlockQuote
	BlockUnorderedList
	BlockOrderedList
)

func (t BlockType) String() string {
	switch t {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockCode:
		return "code"
	case BlockQuote:
		return "quote"
	case BlockUnorderedList:
		return "unordered_list"
	case BlockOrderedList:
		return "ordered_list"
	default:
		return fmt.Sprintf("BlockType(%d)", uint8(t))
	}
}

const (
	codeFence       = "```"
	maxHeadingLevel = 6
)

// SplitBlocks cuts a document on blank lines, trims every block and drops
// the ones left empty.
func SplitBlocks(md string) []string {
	var blocks []string
	for _, candidate := range strings.Split(md, "\n\n") {
		block := strings.TrimSpace(candidate)
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// Classify reports the type of a block. Rules are tried in order and the
// first match wins; anything unmatched is a paragraph.
func Classify(block string) BlockType {
	if HeadingLevel(block) > 0 {
		return BlockHeading
	}
	if strings.HasPrefix(block, codeFence) && strings.HasSuffix(block, codeFence) {
		return BlockCode
	}

	lines := strings.Split(block, "\n")
	switch {
	case everyLine(lines, func(l string) bool { return strings.HasPrefix(l, ">") }):
		return BlockQuote
	case everyLine(lines, func(l string) bool { return l != "" && (l[0] == '-' || l[0] == '*') }):
		return BlockUnorderedList
	case isOrderedList(lines):
		return BlockOrderedList
	}
	return BlockParagraph
}

// HeadingLevel returns 1-6 when the block's first space-separated token is
// made only of '#' characters, and 0 otherwise.
func HeadingLevel(block string) int {
	marker, _, _ := strings.Cut(block, " ")
	if marker == "" || len(marker) > maxHeadingLevel {
		return 0
	}
	if strings.Trim(marker, "#") != "" {
		return 0
	}
	return len(marker)
}

func everyLine(lines []string, match func(string) bool) bool {
	for _, l := range lines {
		if !match(l) {
			return false
		}
	}
	return true
}

// isOrderedList requires lines numbered "1.", "2.", ... without gaps.
func isOrderedList(lines []string) bool {
	for i, l := range lines {
		if !strings.HasPrefix(l, strconv.Itoa(i+1)+".") {
			return false
		}
	}
	return len(lines) > 0
}

// BlockToNode renders a single block according to its type.
func BlockToNode(block string) (Node, error) {
	switch Classify(block) {
	case BlockHeading:
		return headingToNode(block)
	case BlockCode:
		return codeToNode(block)
	case BlockQuote:
		return quoteToNode(block)
	case BlockUnorderedList:
		return listToNode(block, "ul", func(l string) string { return l[1:] })
	case BlockOrderedList:
		return listToNode(block, "ol", func(l string) string {
			_, rest, _ := strings.Cut(l, ".")
			return rest
		})
	default:
		return paragraphToNode(block)
	}
}

// ConvertDocument converts a whole document into a div holding one subtree
// per block, in document order.
func ConvertDocument(md string) (*Parent, error) {
	blocks := SplitBlocks(md)
	root := &Parent{Tag: "div", Children: make([]Node, 0, len(blocks))}
	for _, block := range blocks {
		n, err := BlockToNode(block)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, n)
	}
	return root, nil
}

func inlineParent(tag, text string) (*Parent, error) {
	children, err := InlineNodes(text)
	if err != nil {
		return nil, err
	}
	return NewParent(tag, children...), nil
}

func headingToNode(block string) (Node, error) {
	level := HeadingLevel(block)
	_, text, _ := strings.Cut(block, " ")
	return inlineParent("h"+strconv.Itoa(level), text)
}

func codeToNode(block string) (Node, error) {
	text := strings.TrimPrefix(block, codeFence)
	text = strings.TrimSuffix(text, codeFence)
	code, err := inlineParent("code", strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	return NewParent("pre", code), nil
}

func quoteToNode(block string) (Node, error) {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(strings.TrimPrefix(l, ">"))
	}
	return inlineParent("blockquote", strings.Join(lines, "\n"))
}

func listToNode(block, tag string, stripMarker func(string) string) (Node, error) {
	lines := strings.Split(block, "\n")
	items := make([]Node, 0, len(lines))
	for _, l := range lines {
		item, err := inlineParent("li", strings.TrimSpace(stripMarker(l)))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return NewParent(tag, items...), nil
}

func paragraphToNode(block string) (Node, error) {
	return inlineParent("p", block)
}
