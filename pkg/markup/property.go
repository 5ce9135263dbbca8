package markup

import (
	"strings"
)

// Property is a single key/value pair: a markup attribute or a CSS
// declaration. A property with an empty key or value is skipped when
// rendering.
type Property struct {
	Key   string
	Value string
}

// NewProperty creates a Property.
func NewProperty(key, value string) Property {
	return Property{Key: key, Value: value}
}

// Get returns the key and value.
func (p Property) Get() (string, string) {
	return p.Key, p.Value
}

// Set replaces both key and value.
func (p *Property) Set(key, value string) {
	p.Key = key
	p.Value = value
}

// SetKey replaces the key.
func (p *Property) SetKey(key string) { p.Key = key }

// SetValue replaces the value.
func (p *Property) SetValue(value string) { p.Value = value }

// IsEmpty returns true if the property would be omitted from rendering.
func (p Property) IsEmpty() bool {
	return p.Key == "" || p.Value == ""
}

// Properties is an ordered list of Property values. Indices are dense:
// inserting or erasing shifts the items that follow.
//
// Properties is a value type. Every mutation allocates a fresh backing
// array, so a copy made with assignment never observes later changes to
// the original. The zero value is an empty list ready to use.
type Properties struct {
	items []Property
}

// NewProperties creates a list holding props in order.
func NewProperties(props ...Property) Properties {
	items := make([]Property, len(props))
	copy(items, props)
	return Properties{items: items}
}

// Set replaces the whole list with a copy of props.
func (l *Properties) Set(props []Property) {
	l.items = append([]Property(nil), props...)
}

// All returns a copy of the properties in order.
func (l Properties) All() []Property {
	return append([]Property(nil), l.items...)
}

// Clone returns an independent copy of the list.
func (l Properties) Clone() Properties {
	return Properties{items: l.All()}
}

// Size returns the number of properties.
func (l Properties) Size() int {
	return len(l.items)
}

// At returns the property at index.
func (l Properties) At(index int) (Property, error) {
	if !l.inRange(index) {
		return Property{}, outOfRange(index, len(l.items))
	}
	return l.items[index], nil
}

// Front returns the first property.
func (l Properties) Front() (Property, error) {
	return l.At(0)
}

// Back returns the last property.
func (l Properties) Back() (Property, error) {
	return l.At(len(l.items) - 1)
}

// PushBack appends p.
func (l *Properties) PushBack(p Property) {
	items := make([]Property, len(l.items), len(l.items)+1)
	copy(items, l.items)
	l.items = append(items, p)
}

// PushFront prepends p, shifting every existing property up by one.
func (l *Properties) PushFront(p Property) {
	l.items = append([]Property{p}, l.items...)
}

// Insert places p before the property currently at index. The index must
// hold an item; use PushBack to append.
func (l *Properties) Insert(index int, p Property) error {
	if !l.inRange(index) {
		return outOfRange(index, len(l.items))
	}
	items := make([]Property, 0, len(l.items)+1)
	items = append(items, l.items[:index]...)
	items = append(items, p)
	l.items = append(items, l.items[index:]...)
	return nil
}

// Erase removes the property at index, shifting later ones down.
func (l *Properties) Erase(index int) error {
	if !l.inRange(index) {
		return outOfRange(index, len(l.items))
	}
	items := make([]Property, 0, len(l.items)-1)
	items = append(items, l.items[:index]...)
	l.items = append(items, l.items[index+1:]...)
	return nil
}

// Find returns the first index whose property matches p, or NPos.
//
// At each index the checks run in this order: same key, same value, value
// contains p.Value, key contains p.Key, identical pair. The first index that
// passes any check wins. An empty needle key or value therefore matches the
// first property.
func (l Properties) Find(p Property) int {
	for i, it := range l.items {
		switch {
		case it.Key == p.Key:
			return i
		case it.Value == p.Value:
			return i
		case strings.Contains(it.Value, p.Value):
			return i
		case strings.Contains(it.Key, p.Key):
			return i
		case it == p:
			return i
		}
	}
	return NPos
}

// FindString returns the first index whose key or value equals s or
// contains s, or NPos.
func (l Properties) FindString(s string) int {
	for i, it := range l.items {
		if it.Key == s || it.Value == s {
			return i
		}
		if strings.Contains(it.Key, s) || strings.Contains(it.Value, s) {
			return i
		}
	}
	return NPos
}

// Swap exchanges the properties at i and j.
func (l *Properties) Swap(i, j int) error {
	if !l.inRange(i) {
		return outOfRange(i, len(l.items))
	}
	if !l.inRange(j) {
		return outOfRange(j, len(l.items))
	}
	items := l.All()
	items[i], items[j] = items[j], items[i]
	l.items = items
	return nil
}

// SwapProperties locates p1 and p2 with Find and swaps them.
func (l *Properties) SwapProperties(p1, p2 Property) error {
	i, j := l.Find(p1), l.Find(p2)
	if i == NPos || j == NPos {
		return notFound("property")
	}
	return l.Swap(i, j)
}

func (l Properties) inRange(index int) bool {
	return index >= 0 && index < len(l.items)
}

// render writes ` key="value"` for every non-empty property.
func (l Properties) render(b *strings.Builder) {
	for _, it := range l.items {
		if it.IsEmpty() {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(it.Key)
		b.WriteString(`="`)
		b.WriteString(it.Value)
		b.WriteByte('"')
	}
}
