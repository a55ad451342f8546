package time

import "github.com/marmoset-lang/marmoset/object"

// Docs returns documentation for the time module.
func Docs() []object.FuncSpec {
	return timeDocs
}

// ModuleDoc returns the module-level documentation.
func ModuleDoc() string {
	return "Clock access, parsing, and sleeping"
}

var timeDocs = []object.FuncSpec{
	{Name: "now", Doc: "Current time", Returns: "time"},
	{Name: "parse", Doc: "Ok(time) parsed with a layout, Err on malformed input", Args: []string{"layout", "value"}, Returns: "result"},
	{Name: "since", Doc: "Seconds elapsed since a time", Args: []string{"t"}, Returns: "float"},
	{Name: "sleep", Doc: "Pause for a number of seconds", Args: []string{"seconds"}, Returns: "nil"},
	{Name: "unix", Doc: "Time from a Unix timestamp", Args: []string{"sec", "nsec?"}, Returns: "time"},
}
