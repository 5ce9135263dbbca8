package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string

	// Refines lists broader codes this code also matches under errors.Is.
	Refines []string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// Model errors (M001-M099)

	"M001": {
		Category: CategoryRange,
		Message:  "Index out of range",
	},
	"M002": {
		Category: CategoryArgument,
		Message:  "Index already occupied by a different kind of child",
	},
	"M003": {
		Category: CategoryRange,
		Message:  "Item not found",
		Refines:  []string{"M001"},
	},

	// Configuration errors (C001-C099)

	"C001": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// Publishing errors (P001-P099)

	"P001": {
		Category: CategoryPublish,
		Message:  "Sink write failed",
	},
	"P002": {
		Category: CategoryPublish,
		Message:  "Unknown document",
	},

	// Preview server errors (S001-S099)

	"S001": {
		Category: CategoryServe,
		Message:  "Preview server failed",
	},

	// CLI errors (X001-X099)

	"X001": {
		Category: CategoryCLI,
		Message:  "Invalid command line argument",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered error codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
