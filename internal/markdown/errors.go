package markdown

import "errors"

// Sentinel errors for tokenization.
var (
	// ErrTokenization is wrapped by every inline parsing failure.
	ErrTokenization = errors.New("tokenization failed")

	// ErrUnbalancedDelimiter indicates a delimiter without its closing pair.
	ErrUnbalancedDelimiter = errors.New("unbalanced delimiter")

	// ErrEmptyDelimited indicates two adjacent delimiters with nothing between them.
	ErrEmptyDelimited = errors.New("empty delimited content")
)

// Sentinel errors for rendering.
var (
	// ErrRender is wrapped by every node rendering failure.
	ErrRender = errors.New("render failed")

	ErrMissingTag      = errors.New("missing tag")
	ErrMissingValue    = errors.New("missing value")
	ErrNoChildren      = errors.New("no children")
	ErrUnknownSpanKind = errors.New("unknown span kind")
)
