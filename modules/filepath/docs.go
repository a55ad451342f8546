package filepath

import "github.com/marmoset-lang/marmoset/object"

// Docs returns documentation for the filepath module.
func Docs() []object.FuncSpec {
	return filepathDocs
}

// ModuleDoc returns the module-level documentation.
func ModuleDoc() string {
	return "File path manipulation"
}

var filepathDocs = []object.FuncSpec{
	{Name: "base", Doc: "Last element of a path", Args: []string{"path"}, Returns: "string"},
	{Name: "clean", Doc: "Shortest equivalent path", Args: []string{"path"}, Returns: "string"},
	{Name: "dir", Doc: "All but the last element of a path", Args: []string{"path"}, Returns: "string"},
	{Name: "ext", Doc: "File extension including the dot", Args: []string{"path"}, Returns: "string"},
	{Name: "is_abs", Doc: "Whether the path is absolute", Args: []string{"path"}, Returns: "bool"},
	{Name: "join", Doc: "Join path elements with the separator", Args: []string{"elems..."}, Returns: "string"},
	{Name: "rel", Doc: "Ok(relative path from base to target), Err when impossible", Args: []string{"base", "target"}, Returns: "result"},
	{Name: "split", Doc: "(dir, file) pair for a path", Args: []string{"path"}, Returns: "tuple"},
}
