package css

import (
	"io"
	"strings"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
)

// Stylesheet is an ordered list of rules. Indices are dense: inserting or
// erasing shifts the rules that follow.
type Stylesheet struct {
	rules []Element
}

// NewStylesheet creates a stylesheet holding copies of rules.
func NewStylesheet(rules ...Element) *Stylesheet {
	s := &Stylesheet{}
	s.Set(rules)
	return s
}

// Set replaces every rule with copies of rules.
func (s *Stylesheet) Set(rules []Element) {
	s.rules = make([]Element, len(rules))
	for i := range rules {
		s.rules[i] = rules[i].Clone()
	}
}

// Elements returns copies of the rules in order.
func (s *Stylesheet) Elements() []Element {
	out := make([]Element, len(s.rules))
	for i := range s.rules {
		out[i] = s.rules[i].Clone()
	}
	return out
}

// Size returns the number of rules.
func (s *Stylesheet) Size() int { return len(s.rules) }

// PushBack appends a copy of e.
func (s *Stylesheet) PushBack(e Element) {
	s.rules = append(s.rules, e.Clone())
}

// PushFront prepends a copy of e.
func (s *Stylesheet) PushFront(e Element) {
	s.rules = append([]Element{e.Clone()}, s.rules...)
}

// Insert places a copy of e before the rule at index, which must exist.
func (s *Stylesheet) Insert(index int, e Element) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.rules = append(s.rules, Element{})
	copy(s.rules[index+1:], s.rules[index:])
	s.rules[index] = e.Clone()
	return nil
}

// Erase removes the rule at index.
func (s *Stylesheet) Erase(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.rules = append(s.rules[:index], s.rules[index+1:]...)
	return nil
}

// At returns a copy of the rule at index.
func (s *Stylesheet) At(index int) (Element, error) {
	if err := s.check(index); err != nil {
		return Element{}, err
	}
	return s.rules[index].Clone(), nil
}

// Front returns a copy of the first rule.
func (s *Stylesheet) Front() (Element, error) { return s.At(0) }

// Back returns a copy of the last rule.
func (s *Stylesheet) Back() (Element, error) { return s.At(len(s.rules) - 1) }

// Find returns the index of the first rule rendering identically to e, or
// markup.NPos.
func (s *Stylesheet) Find(e Element) int {
	want := e.String()
	for i := range s.rules {
		if s.rules[i].String() == want {
			return i
		}
	}
	return markup.NPos
}

// FindString returns the index of the first rule whose unformatted
// rendering or selector equals str, or markup.NPos.
func (s *Stylesheet) FindString(str string) int {
	for i := range s.rules {
		if s.rules[i].String() == str || s.rules[i].selector == str {
			return i
		}
	}
	return markup.NPos
}

// Swap exchanges the rules at i and j.
func (s *Stylesheet) Swap(i, j int) error {
	if err := s.check(i); err != nil {
		return err
	}
	if err := s.check(j); err != nil {
		return err
	}
	s.rules[i], s.rules[j] = s.rules[j], s.rules[i]
	return nil
}

// SwapElements locates e1 and e2 with Find and swaps them.
func (s *Stylesheet) SwapElements(e1, e2 Element) error {
	i, j := s.Find(e1), s.Find(e2)
	if i == markup.NPos || j == markup.NPos {
		return errors.New("M003").WithDetail("no matching rule")
	}
	return s.Swap(i, j)
}

// Clone returns an independent copy of the stylesheet.
func (s *Stylesheet) Clone() *Stylesheet {
	return NewStylesheet(s.rules...)
}

// Render concatenates the rules rendered at depth.
func (s *Stylesheet) Render(f markup.Formatting, depth int) string {
	var b strings.Builder
	for i := range s.rules {
		s.rules[i].render(&b, f, depth)
	}
	return b.String()
}

// Get renders the stylesheet at depth 0.
func (s *Stylesheet) Get(f markup.Formatting) string {
	return s.Render(f, 0)
}

// String renders the stylesheet without formatting.
func (s *Stylesheet) String() string {
	return s.Get(markup.FormatNone)
}

// WriteTo writes the unformatted rendering to w.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// Text renders the stylesheet with f and wraps the result in a TextOnly
// element, ready to push into a <style> section.
func (s *Stylesheet) Text(f markup.Formatting) markup.Element {
	return markup.Text(s.Get(f))
}

func (s *Stylesheet) check(index int) error {
	if index < 0 || index >= len(s.rules) {
		return errors.New("M001").WithDetailf("index %d outside [0, %d)", index, len(s.rules))
	}
	return nil
}
