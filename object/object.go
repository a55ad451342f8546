// Package object provides the standard set of Marmoset object types.
//
// For external users of Marmoset, often an object.Object interface
// will be type asserted to a specific object type, such as *object.Option.
//
// For example:
//
//	switch obj := obj.(type) {
//	case *object.Option:
//		// do something with obj.Value()
//	case *object.Result:
//		// do something with obj.Ok() or obj.Err()
//	}
//
// The Type() method of each object may also be used to get a string
// name of the object type, such as "option" or "seq".
//
// The three wrapper types Option, Result, and Seq carry the chaining
// methods (and_then, iter, flat_map, filter) that expanded comprehensions
// call at runtime.
package object

import (
	"context"
	"fmt"
	"sort"

	"github.com/marmoset-lang/marmoset/op"
)

// Type of an object as a string.
type Type string

// Type constants
const (
	BOOL       Type = "bool"
	BUILTIN    Type = "builtin"
	ERROR      Type = "error"
	FLOAT      Type = "float"
	FUNCTION   Type = "function"
	INT        Type = "int"
	LIST       Type = "list"
	MAP        Type = "map"
	MODULE     Type = "module"
	NIL        Type = "nil"
	OPTION     Type = "option"
	RANGE      Type = "range"
	RESULT     Type = "result"
	SEQ        Type = "seq"
	STRING     Type = "string"
	STRUCT     Type = "struct"
	STRUCT_DEF Type = "struct_def"
	TIME       Type = "time"
	TUPLE      Type = "tuple"
)

var (
	Nil   = &NilType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Object is the interface that all object types in Marmoset must implement.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Returns true if the given object is equal to this object.
	Equals(other Object) bool

	// Attrs returns the attribute specifications for this object type.
	// Used for introspection, documentation, and tooling (autocomplete, etc.).
	// Returns nil for types with no attributes.
	Attrs() []AttrSpec

	// GetAttr returns the attribute with the given name from this object.
	GetAttr(name string) (Object, bool)

	// SetAttr sets the attribute with the given name on this object.
	SetAttr(name string, value Object) error

	// IsTruthy returns true if the object is considered "truthy".
	IsTruthy() bool

	// RunOperation runs an operation on this object with the given
	// right-hand side object.
	RunOperation(opType op.BinaryOpType, right Object) (Object, error)
}

// Enumerable is an interface for types that can be iterated with a callback.
// The callback receives the key and value for each element; return false to
// stop. Enumerate returns an error when producing an element fails, which
// happens when a lazy sequence pulls through a user function that errors.
type Enumerable interface {
	Enumerate(ctx context.Context, fn func(key, value Object) bool) error
}

// Container is an interface for types that support item access by key.
type Container interface {
	Enumerable

	// GetItem implements the [key] operator for a container type.
	GetItem(key Object) (Object, *Error)

	// SetItem implements the [key] = value operator for a container type.
	SetItem(key, value Object) *Error

	// Contains returns true if the given item is found in this container.
	Contains(item Object) *Bool

	// Len returns the number of items in this container.
	Len() *Int
}

// Callable is an interface for objects that can be invoked as functions.
// Both *Builtin and *Function implement this interface, allowing code to
// call functions without knowing their concrete type.
//
// For user functions, Call() uses the CallFunc stored in the context (set by
// the evaluator) to run the function body. For builtins, Call() invokes the
// wrapped Go function directly.
//
// The wrapper chaining methods (and_then, flat_map, filter, map) accept any
// Callable, enabling both builtins and user functions to be used as callbacks.
type Callable interface {
	// Call invokes the callable with the given arguments and returns the result.
	Call(ctx context.Context, args ...Object) (Object, error)
}

// Comparable is an interface used to compare two objects.
//
//	-1 if this < other
//	 0 if this == other
//	 1 if this > other
type Comparable interface {
	Compare(other Object) (int, error)
}

func CompareTypes(a, b Object) int {
	aType := a.Type()
	bType := b.Type()
	if aType != bType {
		if aType < bType {
			return -1
		}
		return 1
	}
	return 0
}

// Equals compares two objects for equality, tolerating nil operands.
func Equals(a, b Object) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equals(b)
}

// Keys returns the keys of an object map as a sorted slice of strings.
func Keys(m map[string]Object) []string {
	var names []string
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// PrintableValue returns a value that should be used when printing an object.
func PrintableValue(obj Object) interface{} {
	switch obj := obj.(type) {
	// Primitive types have their underlying Go value passed to fmt.Printf
	// so that Go's Printf-style formatting directives work as expected. Also,
	// with these types there's no good reason for the print format to differ.
	case *String,
		*Int,
		*Float,
		*Error,
		*Bool:
		return obj.Interface()
	}
	// For everything else, convert the object to a string directly, relying
	// on the object type's String() or Inspect() methods. This gives the author
	// of new types the ability to customize the object print string. Wrapper
	// values (Some(1), Ok(2)) deliberately print in their inspected form so
	// comprehension results are recognizable in output.
	switch obj := obj.(type) {
	case fmt.Stringer:
		return obj.String()
	default:
		return obj.Inspect()
	}
}

// EvalErrorf returns a Marmoset Error object containing an eval error.
func EvalErrorf(format string, args ...interface{}) *Error {
	return NewError(newEvalErrorf(format, args...))
}

// ArgsErrorf returns a Marmoset Error object containing an arguments error.
func ArgsErrorf(format string, args ...interface{}) *Error {
	return NewError(newArgsErrorf(format, args...))
}

// TypeErrorf returns a Marmoset Error object containing a type error.
func TypeErrorf(format string, args ...interface{}) *Error {
	return NewError(newTypeErrorf(format, args...))
}

// ValueErrorf returns a Marmoset Error object containing a value error.
func ValueErrorf(format string, args ...interface{}) *Error {
	return NewError(newValueErrorf(format, args...))
}

// IndexErrorf returns a Marmoset Error object containing an index error.
func IndexErrorf(format string, args ...interface{}) *Error {
	return NewError(newIndexErrorf(format, args...))
}
