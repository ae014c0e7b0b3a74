// Package markdown converts a small Markdown dialect into a tree of HTML nodes.
//
// The conversion runs in three layers:
//   - Tokenize splits running text into typed spans (plain, bold, italic,
//     code, link, image).
//   - SplitBlocks and Classify cut a document into blank-line separated
//     blocks and decide what each block is (heading, code fence, quote,
//     unordered list, ordered list, paragraph).
//   - ConvertDocument turns every block into a Node subtree and wraps them
//     in a single root div, ready to Render.
//
// The dialect is deliberately small: no nested emphasis, no nested lists and
// no HTML escaping. Text and attribute values are emitted as written.
package markdown
