// Package tools provides a metadata-driven registry for MCP tool definitions.
// It reduces boilerplate in main.go by defining tools declaratively and
// using type-safe handlers to register them.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a client method with a matching Args type.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "find")
	Name string

	// Method is the client method name (e.g., "Find")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (discovery, query, diagnostics, admin)
	Category string

	// ReadOnly indicates the tool doesn't modify database or local state
	ReadOnly bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ToolsByCategory returns all tool specs in the given category.
func ToolsByCategory(category string) []ToolSpec {
	var result []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			result = append(result, spec)
		}
	}
	return result
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
