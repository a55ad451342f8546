package math

import "github.com/marmoset-lang/marmoset/object"

// Docs returns documentation for the math module.
func Docs() []object.FuncSpec {
	return mathDocs
}

// ModuleDoc returns the module-level documentation.
func ModuleDoc() string {
	return "Mathematical functions and constants"
}

var mathDocs = []object.FuncSpec{
	{Name: "E", Doc: "Euler's number (2.718...)", Returns: "float"},
	{Name: "PI", Doc: "Pi (3.14159...)", Returns: "float"},
	{Name: "abs", Doc: "Absolute value; ints stay ints", Args: []string{"x"}, Returns: "int|float"},
	{Name: "atan2", Doc: "Arc tangent of y/x", Args: []string{"y", "x"}, Returns: "float"},
	{Name: "cbrt", Doc: "Cube root", Args: []string{"x"}, Returns: "float"},
	{Name: "ceil", Doc: "Ceiling (round up)", Args: []string{"x"}, Returns: "float"},
	{Name: "cos", Doc: "Cosine", Args: []string{"x"}, Returns: "float"},
	{Name: "exp", Doc: "e raised to x", Args: []string{"x"}, Returns: "float"},
	{Name: "floor", Doc: "Floor (round down)", Args: []string{"x"}, Returns: "float"},
	{Name: "hypot", Doc: "Euclidean distance sqrt(x*x + y*y)", Args: []string{"x", "y"}, Returns: "float"},
	{Name: "inf", Doc: "Positive or negative infinity", Args: []string{"sign?"}, Returns: "float"},
	{Name: "is_inf", Doc: "Whether x is infinite", Args: []string{"x"}, Returns: "bool"},
	{Name: "log", Doc: "Natural logarithm", Args: []string{"x"}, Returns: "float"},
	{Name: "log10", Doc: "Base-10 logarithm", Args: []string{"x"}, Returns: "float"},
	{Name: "log2", Doc: "Base-2 logarithm", Args: []string{"x"}, Returns: "float"},
	{Name: "max", Doc: "Largest of the arguments, or of a single list", Args: []string{"x..."}, Returns: "int|float"},
	{Name: "min", Doc: "Smallest of the arguments, or of a single list", Args: []string{"x..."}, Returns: "int|float"},
	{Name: "mod", Doc: "Floating-point remainder of x/y", Args: []string{"x", "y"}, Returns: "float"},
	{Name: "pow", Doc: "x raised to y", Args: []string{"x", "y"}, Returns: "float"},
	{Name: "round", Doc: "Round to nearest integer", Args: []string{"x"}, Returns: "float"},
	{Name: "sin", Doc: "Sine", Args: []string{"x"}, Returns: "float"},
	{Name: "sqrt", Doc: "Square root", Args: []string{"x"}, Returns: "float"},
	{Name: "sum", Doc: "Sum of an iterable's elements", Args: []string{"items"}, Returns: "int|float"},
	{Name: "tan", Doc: "Tangent", Args: []string{"x"}, Returns: "float"},
}
