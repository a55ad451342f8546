package rand

import "github.com/marmoset-lang/marmoset/object"

// Docs returns documentation for the rand module.
func Docs() []object.FuncSpec {
	return randDocs
}

// ModuleDoc returns the module-level documentation.
func ModuleDoc() string {
	return "Pseudo-random numbers, choices, and shuffles"
}

var randDocs = []object.FuncSpec{
	{Name: "choice", Doc: "Some(random element) of a list, None when empty", Args: []string{"list"}, Returns: "option"},
	{Name: "float", Doc: "Random float in [0.0, 1.0)", Returns: "float"},
	{Name: "int", Doc: "Random int, in [0, n) or [lo, hi)", Args: []string{"n?", "hi?"}, Returns: "int"},
	{Name: "sample", Doc: "k distinct random elements of a list", Args: []string{"list", "k"}, Returns: "list"},
	{Name: "shuffle", Doc: "Reorder a list in place", Args: []string{"list"}, Returns: "list"},
	{Name: "uniform", Doc: "Random float in [a, b)", Args: []string{"a", "b"}, Returns: "float"},
}
