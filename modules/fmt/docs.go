package fmt

import "github.com/marmoset-lang/marmoset/object"

// Docs returns documentation for the fmt module.
func Docs() []object.FuncSpec {
	return fmtDocs
}

// ModuleDoc returns the module-level documentation.
func ModuleDoc() string {
	return "Formatted printing and string building"
}

var fmtDocs = []object.FuncSpec{
	{Name: "errorf", Doc: "Build an error from a format string", Args: []string{"format", "args..."}, Returns: "error"},
	{Name: "printf", Doc: "Print formatted text to standard output", Args: []string{"format", "args..."}, Returns: "nil"},
	{Name: "sprintf", Doc: "Build a string from a format string", Args: []string{"format", "args..."}, Returns: "string"},
}
