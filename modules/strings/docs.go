package strings

import "github.com/marmoset-lang/marmoset/object"

// Docs returns documentation for the strings module.
func Docs() []object.FuncSpec {
	return stringsDocs
}

// ModuleDoc returns the module-level documentation.
func ModuleDoc() string {
	return "String predicates and transformations"
}

var stringsDocs = []object.FuncSpec{
	{Name: "compare", Doc: "-1, 0, or 1 comparing two strings lexically", Args: []string{"a", "b"}, Returns: "int"},
	{Name: "contains", Doc: "Whether the string contains the substring", Args: []string{"s", "substr"}, Returns: "bool"},
	{Name: "count", Doc: "Number of non-overlapping occurrences", Args: []string{"s", "substr"}, Returns: "int"},
	{Name: "fields", Doc: "Split around runs of whitespace", Args: []string{"s"}, Returns: "list"},
	{Name: "has_prefix", Doc: "Whether the string starts with the prefix", Args: []string{"s", "prefix"}, Returns: "bool"},
	{Name: "has_suffix", Doc: "Whether the string ends with the suffix", Args: []string{"s", "suffix"}, Returns: "bool"},
	{Name: "index", Doc: "Some(index of the first occurrence), or None", Args: []string{"s", "substr"}, Returns: "option"},
	{Name: "join", Doc: "Concatenate list elements with a separator", Args: []string{"list", "sep"}, Returns: "string"},
	{Name: "last_index", Doc: "Some(index of the last occurrence), or None", Args: []string{"s", "substr"}, Returns: "option"},
	{Name: "repeat", Doc: "The string repeated count times", Args: []string{"s", "count"}, Returns: "string"},
	{Name: "replace_all", Doc: "Replace every occurrence of old with new", Args: []string{"s", "old", "new"}, Returns: "string"},
	{Name: "split", Doc: "Split around a separator", Args: []string{"s", "sep"}, Returns: "list"},
	{Name: "to_lower", Doc: "Lowercase the string", Args: []string{"s"}, Returns: "string"},
	{Name: "to_upper", Doc: "Uppercase the string", Args: []string{"s"}, Returns: "string"},
	{Name: "trim", Doc: "Trim characters in the cutset from both ends", Args: []string{"s", "cutset"}, Returns: "string"},
	{Name: "trim_prefix", Doc: "Remove a leading prefix when present", Args: []string{"s", "prefix"}, Returns: "string"},
	{Name: "trim_space", Doc: "Trim whitespace from both ends", Args: []string{"s"}, Returns: "string"},
	{Name: "trim_suffix", Doc: "Remove a trailing suffix when present", Args: []string{"s", "suffix"}, Returns: "string"},
}
