package markup

import (
	"io"
	"strings"
)

// Tag names a predefined section tag.
type Tag uint8

const (
	TagHTML Tag = iota
	TagHead
	TagBody
	TagFooter
	TagDiv
	TagHeader
	TagNav
	TagMain
	TagSection
	TagArticle
	TagAside
	TagForm
	TagTable
	TagTr
	TagUl
	TagOl
	TagLi
	TagTd
	TagSpan
	TagP
	TagStyle
	TagScript
)

var tagNames = [...]string{
	TagHTML:    "html",
	TagHead:    "head",
	TagBody:    "body",
	TagFooter:  "footer",
	TagDiv:     "div",
	TagHeader:  "header",
	TagNav:     "nav",
	TagMain:    "main",
	TagSection: "section",
	TagArticle: "article",
	TagAside:   "aside",
	TagForm:    "form",
	TagTable:   "table",
	TagTr:      "tr",
	TagUl:      "ul",
	TagOl:      "ol",
	TagLi:      "li",
	TagTd:      "td",
	TagSpan:    "span",
	TagP:       "p",
	TagStyle:   "style",
	TagScript:  "script",
}

// String returns the tag name, or "" for an unknown Tag.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return ""
}

// slot is one child position of a Section: vacant, an Element or a Section.
// At most one of the pointers is set.
type slot struct {
	element *Element
	section *Section
}

func (s slot) vacant() bool {
	return s.element == nil && s.section == nil
}

func (s slot) kind() string {
	switch {
	case s.element != nil:
		return "element"
	case s.section != nil:
		return "section"
	default:
		return "nothing"
	}
}

func (s slot) clone() slot {
	switch {
	case s.element != nil:
		e := s.element.Clone()
		return slot{element: &e}
	case s.section != nil:
		return slot{section: s.section.Clone()}
	default:
		return slot{}
	}
}

// render renders the child of a non-vacant slot at depth. A nested section
// is followed by a newline in Pretty and Newline modes, except a fragment:
// its children already end their own lines, and a trailing newline after
// the fragment would print a blank line.
func (s slot) render(b *strings.Builder, f Formatting, depth int) {
	switch {
	case s.element != nil:
		s.element.render(b, f, depth)
	case s.section != nil:
		s.section.render(b, f, depth)
		if s.section.tag != "" {
			writeNewline(b, f)
		}
	}
}

// Section is a composite markup node. Its Elements and nested Sections share
// one index space in insertion order.
//
// A Section with an empty tag is a fragment: it renders only its children
// and does not add a nesting level.
type Section struct {
	tag        string
	properties Properties
	children   []slot
}

// NewSection creates an empty section. The properties are copied.
func NewSection(tag string, properties Properties) *Section {
	return &Section{tag: tag, properties: properties.Clone()}
}

// NewSectionTag creates an empty section with a predefined tag.
func NewSectionTag(tag Tag, properties Properties) *Section {
	return NewSection(tag.String(), properties)
}

// Fragment creates an empty section without a tag.
func Fragment() *Section {
	return &Section{}
}

// Set replaces the tag and properties, keeping the children.
func (s *Section) Set(tag string, properties Properties) {
	s.tag = tag
	s.properties = properties.Clone()
}

// Tag returns the section's tag.
func (s *Section) Tag() string { return s.tag }

// Properties returns a copy of the section's properties.
func (s *Section) Properties() Properties { return s.properties.Clone() }

// Size returns one past the highest slot index ever used. Vacant slots left
// by Erase are counted.
func (s *Section) Size() int {
	return len(s.children)
}

// Clone returns an independent deep copy of the section.
func (s *Section) Clone() *Section {
	c := &Section{
		tag:        s.tag,
		properties: s.properties.Clone(),
		children:   make([]slot, len(s.children)),
	}
	for i, child := range s.children {
		c.children[i] = child.clone()
	}
	return c
}

// PushBack appends a copy of e at the next free index.
func (s *Section) PushBack(e Element) {
	c := e.Clone()
	s.children = append(s.children, slot{element: &c})
}

// PushBackSection appends a copy of sub at the next free index.
func (s *Section) PushBackSection(sub *Section) {
	s.children = append(s.children, slot{section: sub.Clone()})
}

// PushFront stores a copy of e at index 0, shifting every slot up by one.
func (s *Section) PushFront(e Element) {
	c := e.Clone()
	s.pushFront(slot{element: &c})
}

// PushFrontSection stores a copy of sub at index 0, shifting every slot up
// by one.
func (s *Section) PushFrontSection(sub *Section) {
	s.pushFront(slot{section: sub.Clone()})
}

func (s *Section) pushFront(child slot) {
	s.children = append(s.children, slot{})
	copy(s.children[1:], s.children)
	s.children[0] = child
}

// Insert stores a copy of e at index, replacing an element already there.
// It fails with ErrInvalidArgument if the slot holds a Section. An index at
// or beyond Size extends the section to index+1.
func (s *Section) Insert(index int, e Element) error {
	if err := s.checkInsert(index, "element"); err != nil {
		return err
	}
	c := e.Clone()
	s.place(index, slot{element: &c})
	return nil
}

// InsertSection stores a copy of sub at index, replacing a section already
// there. It fails with ErrInvalidArgument if the slot holds an Element.
func (s *Section) InsertSection(index int, sub *Section) error {
	if err := s.checkInsert(index, "section"); err != nil {
		return err
	}
	s.place(index, slot{section: sub.Clone()})
	return nil
}

func (s *Section) checkInsert(index int, want string) error {
	if index < 0 {
		return outOfRange(index, len(s.children))
	}
	if index < len(s.children) {
		have := s.children[index]
		if !have.vacant() && have.kind() != want {
			return kindClash(index, have.kind(), want)
		}
	}
	return nil
}

func (s *Section) place(index int, child slot) {
	if index >= len(s.children) {
		s.children = append(s.children, make([]slot, index+1-len(s.children))...)
	}
	s.children[index] = child
}

// Erase removes the child at index. The slot stays vacant and Size is
// unchanged.
func (s *Section) Erase(index int) error {
	if index < 0 || index >= len(s.children) {
		return outOfRange(index, len(s.children))
	}
	if s.children[index].vacant() {
		return vacantSlot(index, "child")
	}
	s.children[index] = slot{}
	return nil
}

// EraseElement erases the first element that renders identically to e.
func (s *Section) EraseElement(e Element) error {
	index := s.Find(e)
	if index == NPos {
		return notFound("element")
	}
	return s.Erase(index)
}

// EraseSection erases the first section that renders identically to sub.
func (s *Section) EraseSection(sub *Section) error {
	index := s.FindSection(sub)
	if index == NPos {
		return notFound("section")
	}
	return s.Erase(index)
}

// At returns a copy of the element at index.
func (s *Section) At(index int) (Element, error) {
	if index < 0 || index >= len(s.children) {
		return Element{}, outOfRange(index, len(s.children))
	}
	child := s.children[index]
	if child.element == nil {
		return Element{}, vacantSlot(index, "element")
	}
	return child.element.Clone(), nil
}

// AtSection returns a copy of the section at index.
func (s *Section) AtSection(index int) (*Section, error) {
	if index < 0 || index >= len(s.children) {
		return nil, outOfRange(index, len(s.children))
	}
	child := s.children[index]
	if child.section == nil {
		return nil, vacantSlot(index, "section")
	}
	return child.section.Clone(), nil
}

// Find returns the index of the first element that renders identically to
// e, or NPos.
func (s *Section) Find(e Element) int {
	want := e.String()
	for i, child := range s.children {
		if child.element != nil && child.element.String() == want {
			return i
		}
	}
	return NPos
}

// FindSection returns the index of the first section that renders
// identically to sub, or NPos.
func (s *Section) FindSection(sub *Section) int {
	want := sub.String()
	for i, child := range s.children {
		if child.section != nil && child.section.String() == want {
			return i
		}
	}
	return NPos
}

// FindString returns the index of the first child of either kind whose
// unformatted rendering equals str, or NPos.
func (s *Section) FindString(str string) int {
	for i, child := range s.children {
		if child.vacant() {
			continue
		}
		var b strings.Builder
		child.render(&b, FormatNone, 0)
		if b.String() == str {
			return i
		}
	}
	return NPos
}

// Swap exchanges the children at i and j. Both slots must hold a child.
func (s *Section) Swap(i, j int) error {
	for _, index := range []int{i, j} {
		if index < 0 || index >= len(s.children) {
			return outOfRange(index, len(s.children))
		}
		if s.children[index].vacant() {
			return vacantSlot(index, "child")
		}
	}
	s.children[i], s.children[j] = s.children[j], s.children[i]
	return nil
}

// SwapElements locates e1 and e2 with Find and swaps them.
func (s *Section) SwapElements(e1, e2 Element) error {
	i, j := s.Find(e1), s.Find(e2)
	if i == NPos || j == NPos {
		return notFound("element")
	}
	return s.Swap(i, j)
}

// SwapSections locates s1 and s2 with FindSection and swaps them.
func (s *Section) SwapSections(s1, s2 *Section) error {
	i, j := s.FindSection(s1), s.FindSection(s2)
	if i == NPos || j == NPos {
		return notFound("section")
	}
	return s.Swap(i, j)
}

// Elements returns copies of the stored elements in index order.
func (s *Section) Elements() []Element {
	var out []Element
	for _, child := range s.children {
		if child.element != nil {
			out = append(out, child.element.Clone())
		}
	}
	return out
}

// Sections returns copies of the stored sections in index order.
func (s *Section) Sections() []*Section {
	var out []*Section
	for _, child := range s.children {
		if child.section != nil {
			out = append(out, child.section.Clone())
		}
	}
	return out
}

// Render renders the section and its children at the given nesting depth.
func (s *Section) Render(f Formatting, depth int) string {
	var b strings.Builder
	s.render(&b, f, depth)
	return b.String()
}

// Get renders the section at depth 0.
func (s *Section) Get(f Formatting) string {
	return s.Render(f, 0)
}

// String renders the section without formatting.
func (s *Section) String() string {
	return s.Get(FormatNone)
}

// WriteTo writes the unformatted rendering to w, implementing io.WriterTo.
func (s *Section) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func (s *Section) render(b *strings.Builder, f Formatting, depth int) {
	fragment := s.tag == ""

	if fragment {
		// Children of a fragment sit at the fragment's own level, but never
		// shallower than the children of a depth 0 root.
		if depth > 0 {
			depth--
		}
	} else {
		writeIndent(b, f, depth)
		b.WriteByte('<')
		b.WriteString(s.tag)
		s.properties.render(b)
		b.WriteByte('>')
		writeNewline(b, f)
	}

	for _, child := range s.children {
		child.render(b, f, depth+1)
	}

	if !fragment {
		writeIndent(b, f, depth)
		b.WriteString("</")
		b.WriteString(s.tag)
		b.WriteByte('>')
	}
}
