package samples

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
)

func TestNames(t *testing.T) {
	got := strings.Join(Names(), ",")
	if got != "hello-world,nested,search" {
		t.Errorf("Names() = %q", got)
	}
	if len(All()) != 3 || len(Documents()) != 3 {
		t.Error("All() and Documents() should cover every sample")
	}
}

func TestLookup(t *testing.T) {
	s, err := Lookup("search")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if s.Name != "search" || s.Description == "" {
		t.Errorf("got %+v", s)
	}

	_, err = Lookup("missing")
	if !stderrors.Is(err, errors.New("P002")) {
		t.Errorf("Lookup(missing) error = %v, want P002", err)
	}
}

func TestHelloWorld(t *testing.T) {
	got := HelloWorld().String()

	want := `<!DOCTYPE html><html><head><title>Hello world document</title>` +
		`<meta name="description" content="Hello world document description!">` +
		`<style>body {background-color: black;color: white;}</style></head>` +
		`<body><div id="main"><h1>Hello world!</h1><p>This is a paragraph.</p></div></body>` +
		`<footer><p>This is the footer.</p></footer></html>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSearch(t *testing.T) {
	got := Search().Get(markup.FormatPretty)

	for _, want := range []string{
		"\t<style>\n.center {\n\tdisplay: flex;\n",
		"\t<div class=\"center\">\n\t\t<font color=\"blue\">S</font>\n",
		"\t\t\t<input type=\"text\" name=\"q\"/>\n",
		"\t\t\t<input type=\"submit\" value=\"Search!\"/>\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("pretty output missing %q:\n%s", want, got)
		}
	}
}

func TestNested(t *testing.T) {
	got := Nested().Get(markup.FormatPretty)

	for _, want := range []string{
		"<html lang=\"en\">\n",
		"\t\t\t<ul class=\"menu\">\n\t\t\t\t<li>\n\t\t\t\t\t<a href=\"#Home\">Home</a>\n",
		"\t\t\t<article>\n\t\t\t\t<h2>Fragment heading</h2>\n\t\t\t\t<!-- spliced",
		"\t\t\t\t<br/>\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("pretty output missing %q:\n%s", want, got)
		}
	}
}

func TestBuildReturnsFreshDocuments(t *testing.T) {
	s, _ := Lookup("hello-world")
	a, b := s.Build(), s.Build()
	a.SetDoctype("")
	if b.Doctype() != markup.DefaultDoctype {
		t.Error("Build should return independent documents")
	}
}
