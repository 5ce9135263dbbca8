package css

import (
	"io"
	"strings"

	"github.com/vango-dev/markup/pkg/markup"
)

// Element is a CSS rule set: a selector followed by declarations.
type Element struct {
	selector     string
	declarations markup.Properties
}

// NewElement creates a rule for selector holding decls in order.
func NewElement(selector string, decls ...markup.Property) Element {
	return Element{selector: selector, declarations: markup.NewProperties(decls...)}
}

// Set replaces the selector and the declarations.
func (e *Element) Set(selector string, declarations markup.Properties) {
	e.selector = selector
	e.declarations = declarations.Clone()
}

// Selector returns the rule's selector.
func (e *Element) Selector() string { return e.selector }

// SetSelector replaces the selector.
func (e *Element) SetSelector(selector string) { e.selector = selector }

// Declarations returns a copy of the declarations.
func (e *Element) Declarations() markup.Properties { return e.declarations.Clone() }

// Clone returns an independent copy of the rule.
func (e *Element) Clone() Element {
	return Element{selector: e.selector, declarations: e.declarations.Clone()}
}

// The declaration operations below behave like their markup.Properties
// counterparts.

func (e *Element) Size() int { return e.declarations.Size() }
func (e *Element) PushBack(p markup.Property) { e.declarations.PushBack(p) }
func (e *Element) PushFront(p markup.Property) { e.declarations.PushFront(p) }
func (e *Element) Find(p markup.Property) int { return e.declarations.Find(p) }
func (e *Element) FindString(s string) int { return e.declarations.FindString(s) }
func (e *Element) Erase(index int) error { return e.declarations.Erase(index) }
func (e *Element) Swap(i, j int) error { return e.declarations.Swap(i, j) }
func (e *Element) Front() (markup.Property, error) { return e.declarations.Front() }
func (e *Element) Back() (markup.Property, error) { return e.declarations.Back() }

func (e *Element) Insert(index int, p markup.Property) error {
	return e.declarations.Insert(index, p)
}

func (e *Element) At(index int) (markup.Property, error) {
	return e.declarations.At(index)
}

func (e *Element) SwapProperties(p1, p2 markup.Property) error {
	return e.declarations.SwapProperties(p1, p2)
}

// Render renders the rule at the given nesting depth. A rule without a
// selector renders as nothing.
func (e *Element) Render(f markup.Formatting, depth int) string {
	var b strings.Builder
	e.render(&b, f, depth)
	return b.String()
}

// Get renders the rule at depth 0.
func (e *Element) Get(f markup.Formatting) string {
	return e.Render(f, 0)
}

// String renders the rule without formatting.
func (e *Element) String() string {
	return e.Get(markup.FormatNone)
}

// WriteTo writes the unformatted rendering to w.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.String())
	return int64(n), err
}

func (e *Element) render(b *strings.Builder, f markup.Formatting, depth int) {
	if e.selector == "" {
		return
	}

	indent(b, f, depth)
	b.WriteString(e.selector)
	b.WriteString(" {")
	newline(b, f)

	for _, p := range e.declarations.All() {
		if p.IsEmpty() {
			continue
		}
		indent(b, f, depth+1)
		b.WriteString(p.Key)
		b.WriteString(": ")
		b.WriteString(p.Value)
		b.WriteByte(';')
		newline(b, f)
	}

	indent(b, f, depth)
	b.WriteByte('}')
	newline(b, f)
}

func indent(b *strings.Builder, f markup.Formatting, depth int) {
	if f == markup.FormatPretty {
		b.WriteString(strings.Repeat("\t", depth))
	}
}

func newline(b *strings.Builder, f markup.Formatting) {
	if f == markup.FormatPretty || f == markup.FormatNewline {
		b.WriteByte('\n')
	}
}
