// Package errors provides structured, coded errors for the markup module.
//
// Every failure the library reports carries a short code (e.g. "M001") that
// maps to a registered template with a category and a plain-language
// message. Callers compare against the exported sentinels of the public
// packages with the standard errors.Is:
//
//	if err := section.Erase(7); errors.Is(err, markup.ErrOutOfRange) {
//	    // index 7 holds nothing
//	}
//
// # Error Categories
//
//   - range: an index or value resolves to no stored item
//   - argument: a structurally conflicting argument (wrong kind at a slot)
//   - config: markup.json problems
//   - publish: a sink refused rendered output
//   - serve: the preview server failed
//   - cli: command line usage problems
//
// # Usage
//
//	err := errors.New("M001").
//	    WithDetail("index 4 outside [0, 3)").
//	    WithSuggestion("Check Size() before calling At()")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR M001: Index out of range
//	//
//	//   index 4 outside [0, 3)
//	//
//	//   Hint: Check Size() before calling At()
package errors
