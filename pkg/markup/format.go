package markup

import (
	"fmt"
	"strings"
)

// NPos is returned by the Find methods when nothing matches.
const NPos = -1

// Formatting selects the whitespace inserted while rendering.
type Formatting uint8

const (
	FormatNone    Formatting = iota // No inserted whitespace
	FormatPretty                    // Tab indentation and trailing newlines
	FormatNewline                   // Trailing newlines only
)

// String returns the name of the formatting mode.
func (f Formatting) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatPretty:
		return "pretty"
	case FormatNewline:
		return "newline"
	default:
		return "unknown"
	}
}

// ParseFormatting maps a mode name ("none", "pretty", "newline") to its
// Formatting value. Matching is case-insensitive; the empty string is
// FormatNone.
func ParseFormatting(name string) (Formatting, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return FormatNone, nil
	case "pretty":
		return FormatPretty, nil
	case "newline":
		return FormatNewline, nil
	default:
		return FormatNone, fmt.Errorf("unknown formatting %q (want none, pretty or newline)", name)
	}
}

// Renderable is anything that renders itself to markup text at a nesting
// depth.
type Renderable interface {
	Render(f Formatting, depth int) string
}

// writeIndent writes one tab per depth level in pretty mode.
func writeIndent(b *strings.Builder, f Formatting, depth int) {
	if f != FormatPretty {
		return
	}
	for i := 0; i < depth; i++ {
		b.WriteByte('\t')
	}
}

// writeNewline ends a rendered unit in pretty and newline modes.
func writeNewline(b *strings.Builder, f Formatting) {
	if f == FormatPretty || f == FormatNewline {
		b.WriteByte('\n')
	}
}
