package markup

import (
	"io"
	"strings"
)

// DefaultDoctype is the doctype line a Document starts with.
const DefaultDoctype = "<!DOCTYPE html>"

// Document is a doctype line followed by a root Section.
type Document struct {
	doctype string
	root    *Section
}

// NewDocument creates a document holding a copy of root. The doctype
// defaults to DefaultDoctype; pass "" to omit it.
func NewDocument(root *Section, doctype ...string) *Document {
	d := &Document{doctype: DefaultDoctype}
	if len(doctype) > 0 {
		d.doctype = doctype[0]
	}
	d.Set(root)
	return d
}

// Set replaces the root section with a copy of root. A nil root is stored
// as an empty fragment.
func (d *Document) Set(root *Section) {
	if root == nil {
		d.root = Fragment()
		return
	}
	d.root = root.Clone()
}

// Section returns the root section itself. Changes made through it are
// visible in the document.
func (d *Document) Section() *Section {
	if d.root == nil {
		d.root = Fragment()
	}
	return d.root
}

// SetDoctype replaces the doctype line.
func (d *Document) SetDoctype(doctype string) { d.doctype = doctype }

// Doctype returns the doctype line.
func (d *Document) Doctype() string { return d.doctype }

// Render renders the doctype and the root section at depth.
func (d *Document) Render(f Formatting, depth int) string {
	var b strings.Builder
	if d.doctype != "" {
		writeIndent(&b, f, depth)
		b.WriteString(d.doctype)
		writeNewline(&b, f)
	}
	if d.root != nil {
		d.root.render(&b, f, depth)
	}
	return b.String()
}

// Get renders the document at depth 0.
func (d *Document) Get(f Formatting) string {
	return d.Render(f, 0)
}

// String renders the document without formatting.
func (d *Document) String() string {
	return d.Get(FormatNone)
}

// WriteTo writes the unformatted rendering to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}
