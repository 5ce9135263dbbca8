package markup

import (
	"github.com/vango-dev/markup/internal/errors"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrOutOfRange reports an index outside a container's bounds, or one
	// that resolves to no stored item.
	ErrOutOfRange error = errors.New("M001")

	// ErrInvalidArgument reports a structural conflict, such as inserting an
	// Element into a slot that holds a Section.
	ErrInvalidArgument error = errors.New("M002")

	// ErrNotFound reports that an erase or swap by value found no match.
	// It also matches ErrOutOfRange.
	ErrNotFound error = errors.New("M003")
)

func outOfRange(index, size int) error {
	return errors.New("M001").WithDetailf("index %d outside [0, %d)", index, size)
}

func vacantSlot(index int, want string) error {
	return errors.New("M001").WithDetailf("index %d holds no %s", index, want)
}

func kindClash(index int, have, want string) error {
	return errors.New("M002").
		WithDetailf("index %d holds a %s, cannot store a %s there", index, have, want).
		WithSuggestion("Erase the slot first or choose a free index")
}

func notFound(what string) error {
	return errors.New("M003").WithDetailf("no matching %s", what)
}
