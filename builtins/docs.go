package builtins

import "github.com/marmoset-lang/marmoset/object"

// Docs returns documentation for all builtin functions.
func Docs() []object.FuncSpec {
	return builtinDocs
}

var builtinDocs = []object.FuncSpec{
	{
		Name:    "Some",
		Doc:     "Wrap a value as a present option",
		Args:    []string{"value"},
		Returns: "option",
		Example: "Some(42)",
	},
	{
		Name:    "Ok",
		Doc:     "Wrap a value as a successful result",
		Args:    []string{"value"},
		Returns: "result",
		Example: "Ok(42)",
	},
	{
		Name:    "Err",
		Doc:     "Wrap a value as a failed result",
		Args:    []string{"value"},
		Returns: "result",
		Example: "Err(\"not found\")",
	},
	{
		Name:    "all",
		Doc:     "Return true if all elements are truthy",
		Args:    []string{"items"},
		Returns: "bool",
		Example: "all([true, 1, \"yes\"])",
	},
	{
		Name:    "any",
		Doc:     "Return true if any element is truthy",
		Args:    []string{"items"},
		Returns: "bool",
		Example: "any([false, 0, \"yes\"])",
	},
	{
		Name:    "assert",
		Doc:     "Raise an error if condition is false",
		Args:    []string{"condition", "message?"},
		Returns: "nil",
		Example: "assert(x > 0, \"x must be positive\")",
	},
	{
		Name:    "bool",
		Doc:     "Convert value to boolean",
		Args:    []string{"value?"},
		Returns: "bool",
		Example: "bool(1)",
	},
	{
		Name:    "call",
		Doc:     "Call a function with the given arguments",
		Args:    []string{"fn", "args..."},
		Returns: "object",
		Example: "call(add, 1, 2)",
	},
	{
		Name:    "error",
		Doc:     "Create an error value from a format string",
		Args:    []string{"format", "args..."},
		Returns: "error",
		Example: "error(\"bad value: %d\", x)",
	},
	{
		Name:    "float",
		Doc:     "Convert value to float",
		Args:    []string{"value?"},
		Returns: "float",
		Example: "float(\"4.5\")",
	},
	{
		Name:    "getattr",
		Doc:     "Look up an attribute by name, with an optional default",
		Args:    []string{"obj", "name", "default?"},
		Returns: "object",
		Example: "getattr(point, \"x\")",
	},
	{
		Name:    "int",
		Doc:     "Convert value to integer",
		Args:    []string{"value?"},
		Returns: "int",
		Example: "int(\"42\")",
	},
	{
		Name:    "iter",
		Doc:     "Adapt an iterable to a lazy sequence",
		Args:    []string{"iterable"},
		Returns: "seq",
		Example: "iter([1, 2, 3])",
	},
	{
		Name:    "keys",
		Doc:     "Return the keys of an enumerable as a list",
		Args:    []string{"obj"},
		Returns: "list",
		Example: "keys({\"a\": 1})",
	},
	{
		Name:    "len",
		Doc:     "Return the number of items in a container",
		Args:    []string{"obj"},
		Returns: "int",
		Example: "len([1, 2, 3])",
	},
	{
		Name:    "list",
		Doc:     "Collect an iterable into a list",
		Args:    []string{"iterable?"},
		Returns: "list",
		Example: "list(0..4)",
	},
	{
		Name:    "print",
		Doc:     "Print values separated by spaces",
		Args:    []string{"values..."},
		Returns: "nil",
		Example: "print(\"x =\", x)",
	},
	{
		Name:    "println",
		Doc:     "Print values separated by spaces, with a trailing newline",
		Args:    []string{"values..."},
		Returns: "nil",
		Example: "println(\"done\")",
	},
	{
		Name:    "reversed",
		Doc:     "Collect an iterable into a list in reverse order",
		Args:    []string{"iterable"},
		Returns: "list",
		Example: "reversed([1, 2, 3])",
	},
	{
		Name:    "sorted",
		Doc:     "Collect an iterable into a sorted list",
		Args:    []string{"iterable"},
		Returns: "list",
		Example: "sorted([3, 1, 2])",
	},
	{
		Name:    "sprintf",
		Doc:     "Format values into a string",
		Args:    []string{"format", "args..."},
		Returns: "string",
		Example: "sprintf(\"%d apples\", n)",
	},
	{
		Name:    "string",
		Doc:     "Convert value to string",
		Args:    []string{"value?"},
		Returns: "string",
		Example: "string(42)",
	},
	{
		Name:    "type",
		Doc:     "Return the type name of a value",
		Args:    []string{"value"},
		Returns: "string",
		Example: "type(Some(1))",
	},
}
