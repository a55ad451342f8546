package regexp

import "github.com/marmoset-lang/marmoset/object"

// Docs returns documentation for the regexp module.
func Docs() []object.FuncSpec {
	return regexpDocs
}

// ModuleDoc returns the module-level documentation.
func ModuleDoc() string {
	return "Regular expression compilation and matching"
}

var regexpDocs = []object.FuncSpec{
	{Name: "compile", Doc: "Ok(compiled regexp) or Err for an invalid pattern", Args: []string{"pattern"}, Returns: "result"},
	{Name: "match", Doc: "Whether the string contains a match of the pattern", Args: []string{"pattern", "s"}, Returns: "bool"},
}

// RegexpDocs describes the methods of a compiled regexp object.
func RegexpDocs() []object.AttrSpec {
	return regexpAttrs.Specs()
}
