package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "out of range",
			code:    "M001",
			wantMsg: "Index out of range",
			wantCat: CategoryRange,
		},
		{
			name:    "kind clash",
			code:    "M002",
			wantMsg: "Index already occupied by a different kind of child",
			wantCat: CategoryArgument,
		},
		{
			name:    "config error",
			code:    "C002",
			wantMsg: "Invalid configuration file",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "M999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "sample %q not found", "index")
	if err.Message != `sample "index" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `sample "index" not found`)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "code only",
			err:  New("M001"),
			want: "M001: Index out of range",
		},
		{
			name: "with detail",
			err:  New("M001").WithDetail("index 4 outside [0, 3)"),
			want: "M001: Index out of range: index 4 outside [0, 3)",
		},
		{
			name: "with wrapped",
			err:  New("P001").Wrap(fmt.Errorf("disk full")),
			want: "P001: Sink write failed: disk full",
		},
		{
			name: "without code",
			err:  &Error{Message: "test error"},
			want: "test error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	outOfRange := New("M001")
	notFound := New("M003").WithDetail("element")

	if !stderrors.Is(New("M001").WithDetail("x"), outOfRange) {
		t.Error("same code should match")
	}
	if !stderrors.Is(notFound, outOfRange) {
		t.Error("M003 refines M001 and should match it")
	}
	if stderrors.Is(outOfRange, New("M003")) {
		t.Error("M001 should not match the narrower M003")
	}
	if stderrors.Is(New("M002"), outOfRange) {
		t.Error("different codes should not match")
	}
	if stderrors.Is(outOfRange, &Error{Message: "no code"}) {
		t.Error("codeless target should never match")
	}

	wrapped := fmt.Errorf("while editing: %w", New("M002"))
	if !stderrors.Is(wrapped, New("M002")) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestError_WithSuggestion(t *testing.T) {
	err := New("M001").WithSuggestion("Check Size() first")
	if err.Suggestion != "Check Size() first" {
		t.Errorf("Suggestion = %q, want %q", err.Suggestion, "Check Size() first")
	}
}

func TestError_WithDetailf(t *testing.T) {
	err := New("M001").WithDetailf("index %d outside [0, %d)", 5, 2)
	if err.Detail != "index 5 outside [0, 2)" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestError_Wrap(t *testing.T) {
	inner := New("C003")
	outer := New("C002").Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "P001") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	e := New("P001")
	if FromError(e, "P002") != e {
		t.Error("FromError should return *Error as-is")
	}

	stdErr := &testError{msg: "test error"}
	result := FromError(stdErr, "P001")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
	if result.Code != "P001" {
		t.Errorf("Code = %q, want P001", result.Code)
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("C002").
		WithDetail("Failed to parse markup.json").
		WithSuggestion("Check that markup.json is valid JSON").
		Wrap(fmt.Errorf("unexpected EOF"))

	formatted := err.Format()

	for _, want := range []string{
		"ERROR C002: Invalid configuration file",
		"Failed to parse markup.json",
		"Caused by: unexpected EOF",
		"Hint: Check that markup.json is valid JSON",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q in %q", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("M001").WithDetail("index 3")
	want := "M001: Index out of range (index 3)"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, New("X001"))
	if !strings.Contains(buf.String(), "X001") {
		t.Errorf("PrintError output %q should contain code", buf.String())
	}

	buf.Reset()
	PrintError(&buf, stderrors.Join(New("P001").WithDetail("a.html"), New("P001").WithDetail("b.html")))
	if got := strings.Count(buf.String(), "ERROR P001"); got != 2 {
		t.Errorf("joined errors printed %d times, want 2: %q", got, buf.String())
	}

	buf.Reset()
	PrintError(&buf, fmt.Errorf("publishing: %w", New("P002")))
	if !strings.Contains(buf.String(), "ERROR: publishing: P002") || !strings.Contains(buf.String(), "ERROR P002: Unknown document") {
		t.Errorf("wrapped error output %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, fmt.Errorf("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError output %q should contain plain message", buf.String())
	}
}

func TestLookup(t *testing.T) {
	template, ok := Lookup("M002")
	if !ok {
		t.Fatal("M002 should exist")
	}
	if template.Category != CategoryArgument {
		t.Errorf("Category = %q, want %q", template.Category, CategoryArgument)
	}

	if _, ok := Lookup("E999"); ok {
		t.Error("E999 should not exist")
	}

	found := false
	for _, code := range Codes() {
		if code == "M001" {
			found = true
			break
		}
	}
	if !found {
		t.Error("M001 should be in the codes list")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	got = wrapText("", 10)
	if len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
