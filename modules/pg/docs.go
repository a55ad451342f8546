package pg

import "github.com/marmoset-lang/marmoset/object"

// Docs returns documentation for the pg module.
func Docs() []object.FuncSpec {
	return pgDocs
}

// ModuleDoc returns the module-level documentation.
func ModuleDoc() string {
	return "PostgreSQL connections and queries"
}

var pgDocs = []object.FuncSpec{
	{Name: "connect", Doc: "Ok(connection) for a PostgreSQL URL, Err when unreachable", Args: []string{"url"}, Returns: "result"},
}
