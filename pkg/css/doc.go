// Package css builds CSS stylesheets and renders them to text.
//
// An Element is one rule: a selector and its declarations, stored as a
// markup.Properties list so that declarations share the attribute API. A
// Stylesheet is an ordered list of rules and renders by concatenation.
//
//	sheet := css.NewStylesheet(
//		css.NewElement("p",
//			markup.NewProperty("color", "red"),
//			markup.NewProperty("font-size", "16px"),
//		),
//	)
//	sheet.String() // p {color: red;font-size: 16px;}
//
// A rendered stylesheet is usually spliced into a document through
// Stylesheet.Text, which wraps it in a TextOnly markup element.
package css
