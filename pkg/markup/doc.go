// Package markup builds HTML/XML-like documents in memory and renders them
// to text.
//
// The model is write-only: callers construct leaves, compose them into
// sections, wrap a root section in a Document and render. Nothing is parsed,
// validated or escaped; attribute values are always double-quoted and text is
// emitted verbatim, so callers must pre-escape untrusted input.
//
// # Core Types
//
// Property is a key/value pair. Properties is an ordered, index-addressable
// list of them. Element is a leaf node (tag, properties, text payload and a
// ClosingStyle). Section is a composite node whose Elements and nested
// Sections share one index space. Document pairs a root Section with a
// doctype preamble.
//
// # Building
//
//	html := markup.NewSectionTag(markup.TagHTML, markup.Properties{})
//	head := markup.NewSectionTag(markup.TagHead, markup.Properties{})
//	head.PushBack(markup.NewElement("title", markup.Properties{}, "Hello", markup.NonSelfClosing))
//	html.PushBackSection(head)
//
//	doc := markup.NewDocument(html)
//	fmt.Println(doc.Get(markup.FormatPretty))
//
// Values are copied in: pushing or inserting a child stores an independent
// copy, so later changes to the caller's value do not reach the container.
// Accessors such as Section.At and Section.AtSection return copies too. The
// exception is Document.Section, which hands out the root for in-place edits.
//
// # Indices
//
// A Section's children occupy slots 0..Size()-1. Erasing a child leaves its
// slot vacant; the slot keeps its number and is skipped when rendering.
// Properties and css.Stylesheet are dense lists instead: erasing shifts the
// following items down.
//
// # Formatting
//
// FormatNone emits no extra whitespace. FormatNewline ends each rendered
// unit with a newline. FormatPretty additionally indents with one tab per
// nesting level.
package markup
