package bcrypt

import "github.com/marmoset-lang/marmoset/object"

// Docs returns documentation for the bcrypt module.
func Docs() []object.FuncSpec {
	return bcryptDocs
}

// ModuleDoc returns the module-level documentation.
func ModuleDoc() string {
	return "Password hashing with bcrypt"
}

var bcryptDocs = []object.FuncSpec{
	{Name: "compare", Doc: "Whether a password matches a bcrypt hash", Args: []string{"hash", "password"}, Returns: "bool"},
	{Name: "hash", Doc: "Ok(bcrypt hash) of a password, Err when the cost is out of range", Args: []string{"password", "cost?"}, Returns: "result"},
}
