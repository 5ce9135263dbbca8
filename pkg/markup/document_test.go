package markup

import (
	"strings"
	"testing"
)

func scenarioDocument() *Document {
	html := NewSectionTag(TagHTML, Properties{})
	head := NewSectionTag(TagHead, Properties{})
	body := NewSectionTag(TagBody, Properties{})
	footer := NewSectionTag(TagFooter, Properties{})

	head.PushBack(NewElement("title", Properties{}, "Test Title", NonSelfClosing))
	body.PushBack(NewElement("h1", Properties{}, "Test Header", NonSelfClosing))
	body.PushBack(NewElement("p", Properties{}, "Test Paragraph", NonSelfClosing))

	html.PushBackSection(head)
	html.PushBackSection(body)
	html.PushBackSection(footer)

	return NewDocument(html)
}

func TestDocumentRender(t *testing.T) {
	doc := scenarioDocument()

	tests := []struct {
		name string
		f    Formatting
		want string
	}{
		{
			name: "none",
			f:    FormatNone,
			want: "<!DOCTYPE html><html><head><title>Test Title</title></head><body><h1>Test Header</h1><p>Test Paragraph</p></body><footer></footer></html>",
		},
		{
			name: "pretty",
			f:    FormatPretty,
			want: "<!DOCTYPE html>\n<html>\n\t<head>\n\t\t<title>Test Title</title>\n\t</head>\n\t<body>\n\t\t<h1>Test Header</h1>\n\t\t<p>Test Paragraph</p>\n\t</body>\n\t<footer>\n\t</footer>\n</html>",
		},
		{
			name: "newline",
			f:    FormatNewline,
			want: "<!DOCTYPE html>\n<html>\n<head>\n<title>Test Title</title>\n</head>\n<body>\n<h1>Test Header</h1>\n<p>Test Paragraph</p>\n</body>\n<footer>\n</footer>\n</html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.Get(tt.f); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentDoctype(t *testing.T) {
	root := NewSectionTag(TagHTML, Properties{})

	doc := NewDocument(root, `<?xml version="1.0"?>`)
	if got := doc.Get(FormatNewline); got != "<?xml version=\"1.0\"?>\n<html>\n</html>" {
		t.Errorf("custom doctype got %q", got)
	}

	doc.SetDoctype("")
	if doc.Doctype() != "" {
		t.Errorf("Doctype() = %q, want empty", doc.Doctype())
	}
	if got := doc.Get(FormatPretty); got != "<html>\n</html>" {
		t.Errorf("empty doctype got %q", got)
	}
}

func TestDocumentSectionHandle(t *testing.T) {
	doc := scenarioDocument()

	doc.Section().PushBack(NewElement("script", Properties{}, "", NonSelfClosing))
	if !strings.Contains(doc.String(), "<script></script></html>") {
		t.Errorf("edit through Section() should reach the document, got %q", doc.String())
	}

	root := NewSectionTag(TagHTML, Properties{})
	doc.Set(root)
	root.PushBack(NewElement("late", Properties{}, "", NonSelfClosing))
	if strings.Contains(doc.String(), "late") {
		t.Errorf("Set should store a copy, got %q", doc.String())
	}

	doc.Set(nil)
	if got := doc.String(); got != DefaultDoctype {
		t.Errorf("nil root got %q, want only the doctype", got)
	}
}

func TestDocumentWriteTo(t *testing.T) {
	doc := scenarioDocument()

	var b strings.Builder
	n, err := doc.WriteTo(&b)
	if err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}
	if b.String() != doc.String() || int(n) != len(doc.String()) {
		t.Errorf("WriteTo wrote %d bytes %q", n, b.String())
	}
}

func TestRenderableImplementations(t *testing.T) {
	e := NewElement("b", Properties{}, "x", NonSelfClosing)
	renderables := []Renderable{&e, NewSection("i", Properties{}), scenarioDocument()}
	for _, r := range renderables {
		if r.Render(FormatNone, 0) == "" {
			t.Errorf("%T rendered nothing", r)
		}
	}
}
