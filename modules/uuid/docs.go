package uuid

import "github.com/marmoset-lang/marmoset/object"

// Docs returns documentation for the uuid module.
func Docs() []object.FuncSpec {
	return uuidDocs
}

// ModuleDoc returns the module-level documentation.
func ModuleDoc() string {
	return "UUID generation and parsing"
}

var uuidDocs = []object.FuncSpec{
	{Name: "parse", Doc: "Ok(canonical UUID string) or Err for malformed input", Args: []string{"s"}, Returns: "result"},
	{Name: "v4", Doc: "Random (version 4) UUID string", Returns: "string"},
	{Name: "v5", Doc: "Name-based (version 5) UUID string", Args: []string{"namespace", "name"}, Returns: "string"},
}
