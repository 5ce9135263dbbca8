// Package samples holds the built-in documents rendered by the markup CLI
// and served by the preview server.
package samples

import (
	"sort"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/css"
	"github.com/vango-dev/markup/pkg/markup"
)

// Sample is a named document builder.
type Sample struct {
	Name        string
	Description string
	build       func() *markup.Document
}

// Build constructs a fresh copy of the sample document.
func (s Sample) Build() *markup.Document {
	return s.build()
}

var registry = map[string]Sample{
	"hello-world": {
		Name:        "hello-world",
		Description: "Head with meta and spliced stylesheet, body, footer",
		build:       HelloWorld,
	},
	"search": {
		Name:        "search",
		Description: "Centered coloured logo and a search form with self-closing inputs",
		build:       Search,
	},
	"nested": {
		Name:        "nested",
		Description: "Deeply nested sections, a fragment and text nodes",
		build:       Nested,
	},
}

// Lookup returns the sample registered under name.
func Lookup(name string) (Sample, error) {
	s, ok := registry[name]
	if !ok {
		return Sample{}, errors.New("P002").
			WithDetailf("no sample named %q", name).
			WithSuggestion("Run 'markup list' to see the available samples")
	}
	return s, nil
}

// Names returns the registered sample names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every sample in name order.
func All() []Sample {
	out := make([]Sample, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}

// Documents builds every sample, keyed by name.
func Documents() map[string]*markup.Document {
	docs := make(map[string]*markup.Document, len(registry))
	for name, s := range registry {
		docs[name] = s.Build()
	}
	return docs
}

func props(kv ...string) markup.Properties {
	var p markup.Properties
	for i := 0; i+1 < len(kv); i += 2 {
		p.PushBack(markup.NewProperty(kv[i], kv[i+1]))
	}
	return p
}

func el(tag, data string, kv ...string) markup.Element {
	return markup.NewElement(tag, props(kv...), data, markup.NonSelfClosing)
}

// HelloWorld builds a small page with a head, body and footer.
func HelloWorld() *markup.Document {
	html := markup.NewSectionTag(markup.TagHTML, markup.Properties{})
	head := markup.NewSectionTag(markup.TagHead, markup.Properties{})
	body := markup.NewSectionTag(markup.TagBody, markup.Properties{})
	footer := markup.NewSectionTag(markup.TagFooter, markup.Properties{})

	head.PushBack(el("title", "Hello world document"))
	head.PushBack(markup.NewElement("meta",
		props("name", "description", "content", "Hello world document description!"),
		"", markup.NonClosed))

	sheet := css.NewStylesheet(css.NewElement("body",
		markup.NewProperty("background-color", "black"),
		markup.NewProperty("color", "white"),
	))
	head.PushBack(markup.NewElement("style", markup.Properties{}, sheet.String(), markup.NonSelfClosing))

	footer.PushBack(el("p", "This is the footer."))

	main := markup.NewSectionTag(markup.TagDiv, props("id", "main"))
	main.PushBack(el("h1", "Hello world!"))
	main.PushBack(el("p", "This is a paragraph."))
	body.PushBackSection(main)

	html.PushBackSection(head)
	html.PushBackSection(body)
	html.PushBackSection(footer)

	return markup.NewDocument(html)
}

// Search builds a search landing page: a row of coloured letters and a
// form posting to an external search engine.
func Search() *markup.Document {
	html := markup.NewSectionTag(markup.TagHTML, markup.Properties{})
	html.PushBack(el("title", "Search"))

	sheet := css.NewStylesheet(
		css.NewElement(".center",
			markup.NewProperty("display", "flex"),
			markup.NewProperty("flex-wrap", "wrap"),
			markup.NewProperty("justify-content", "center"),
			markup.NewProperty("align-items", "center"),
			markup.NewProperty("font-size", "10vw"),
			markup.NewProperty("height", "10vw"),
			markup.NewProperty("padding", "10vw"),
		),
		css.NewElement("input[type=text], select",
			markup.NewProperty("width", "50vw"),
		),
	)
	style := markup.NewSectionTag(markup.TagStyle, markup.Properties{})
	style.PushBack(sheet.Text(markup.FormatPretty))
	html.PushBackSection(style)

	logo := markup.NewSectionTag(markup.TagDiv, props("class", "center"))
	letters := []struct{ color, letter string }{
		{"blue", "S"}, {"red", "e"}, {"yellow", "a"},
		{"blue", "r"}, {"green", "c"}, {"red", "h"},
	}
	for _, l := range letters {
		logo.PushBack(el("font", l.letter, "color", l.color))
	}
	html.PushBackSection(logo)

	form := markup.NewSectionTag(markup.TagForm, props("action", "https://duckduckgo.com/", "method", "get"))
	form.PushBack(markup.NewElement("input", props("type", "text", "name", "q"), "", markup.SelfClosing))
	form.PushBack(markup.NewElement("input", props("type", "submit", "value", "Search!"), "", markup.SelfClosing))

	centered := markup.NewSectionTag(markup.TagDiv, props("align", "center"))
	centered.PushBackSection(form)
	html.PushBackSection(centered)

	return markup.NewDocument(html)
}

// Nested builds a document exercising deep nesting, a fragment and both
// text styles.
func Nested() *markup.Document {
	list := markup.NewSectionTag(markup.TagUl, props("class", "menu"))
	for _, item := range []string{"Home", "Docs", "About"} {
		li := markup.NewSectionTag(markup.TagLi, markup.Properties{})
		li.PushBack(el("a", item, "href", "#"+item))
		list.PushBackSection(li)
	}

	nav := markup.NewSectionTag(markup.TagNav, markup.Properties{})
	nav.PushBackSection(list)

	fragment := markup.Fragment()
	fragment.PushBack(el("h2", "Fragment heading"))
	fragment.PushBack(markup.IndentedText("<!-- spliced at the parent's level -->"))

	article := markup.NewSectionTag(markup.TagArticle, markup.Properties{})
	article.PushBackSection(fragment)
	article.PushBack(el("p", "Article body."))
	article.PushBack(markup.NewElement("br", markup.Properties{}, "", markup.SelfClosing))

	main := markup.NewSectionTag(markup.TagMain, markup.Properties{})
	main.PushBackSection(article)

	body := markup.NewSectionTag(markup.TagBody, markup.Properties{})
	body.PushBackSection(nav)
	body.PushBackSection(main)

	html := markup.NewSectionTag(markup.TagHTML, props("lang", "en"))
	html.PushBackSection(body)

	return markup.NewDocument(html)
}
