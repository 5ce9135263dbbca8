package markup

import (
	"io"
	"strings"
)

// ClosingStyle controls how an Element closes.
type ClosingStyle uint8

const (
	NonSelfClosing   ClosingStyle = iota // <p>data</p>
	SelfClosing                          // <input/>
	NonClosed                            // <img>data, no closing tag
	TextOnly                             // data verbatim, no tag
	TextOnlyIndented                     // data verbatim after indentation
)

// String returns the name of the closing style.
func (s ClosingStyle) String() string {
	switch s {
	case NonSelfClosing:
		return "NonSelfClosing"
	case SelfClosing:
		return "SelfClosing"
	case NonClosed:
		return "NonClosed"
	case TextOnly:
		return "TextOnly"
	case TextOnlyIndented:
		return "TextOnlyIndented"
	default:
		return "Unknown"
	}
}

// isText returns true for styles that render data without a tag.
func (s ClosingStyle) isText() bool {
	return s == TextOnly || s == TextOnlyIndented
}

// Element is a leaf markup node: a tag with properties and a text payload.
type Element struct {
	tag        string
	properties Properties
	data       string
	style      ClosingStyle
}

// NewElement creates an Element. The properties are copied.
func NewElement(tag string, properties Properties, data string, style ClosingStyle) Element {
	return Element{
		tag:        tag,
		properties: properties.Clone(),
		data:       data,
		style:      style,
	}
}

// Text creates a TextOnly element that splices data verbatim into the tree,
// e.g. a pre-rendered stylesheet.
func Text(data string) Element {
	return Element{data: data, style: TextOnly}
}

// IndentedText creates a TextOnlyIndented element.
func IndentedText(data string) Element {
	return Element{data: data, style: TextOnlyIndented}
}

// Set replaces every field of the element. The properties are copied.
func (e *Element) Set(tag string, properties Properties, data string, style ClosingStyle) {
	*e = NewElement(tag, properties, data, style)
}

// Tag returns the element's tag.
func (e *Element) Tag() string { return e.tag }

// Data returns the text payload.
func (e *Element) Data() string { return e.data }

// Style returns the closing style.
func (e *Element) Style() ClosingStyle { return e.style }

// Properties returns a copy of the element's properties.
func (e *Element) Properties() Properties { return e.properties.Clone() }

// SetTag replaces the tag.
func (e *Element) SetTag(tag string) { e.tag = tag }

// SetData replaces the text payload.
func (e *Element) SetData(data string) { e.data = data }

// SetStyle replaces the closing style.
func (e *Element) SetStyle(style ClosingStyle) { e.style = style }

// SetProperties replaces the properties with a copy of properties.
func (e *Element) SetProperties(properties Properties) {
	e.properties = properties.Clone()
}

// AppendData appends s to the text payload.
func (e *Element) AppendData(s string) {
	e.data += s
}

// Clone returns an independent copy of the element.
func (e *Element) Clone() Element {
	c := *e
	c.properties = e.properties.Clone()
	return c
}

// Render renders the element at the given nesting depth.
func (e *Element) Render(f Formatting, depth int) string {
	var b strings.Builder
	e.render(&b, f, depth)
	return b.String()
}

// Get renders the element at depth 0.
func (e *Element) Get(f Formatting) string {
	return e.Render(f, 0)
}

// String renders the element without formatting.
func (e *Element) String() string {
	return e.Get(FormatNone)
}

// WriteTo writes the unformatted rendering to w, implementing io.WriterTo.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.String())
	return int64(n), err
}

func (e *Element) render(b *strings.Builder, f Formatting, depth int) {
	if e.style.isText() {
		if e.style == TextOnlyIndented {
			writeIndent(b, f, depth)
		}
		b.WriteString(e.data)
		writeNewline(b, f)
		return
	}

	writeIndent(b, f, depth)
	b.WriteByte('<')
	b.WriteString(e.tag)
	e.properties.render(b)

	switch e.style {
	case SelfClosing:
		b.WriteString("/>")
	case NonClosed:
		b.WriteByte('>')
		b.WriteString(e.data)
	default:
		b.WriteByte('>')
		b.WriteString(e.data)
		b.WriteString("</")
		b.WriteString(e.tag)
		b.WriteByte('>')
	}

	writeNewline(b, f)
}
