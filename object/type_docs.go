package object

import "time"

func init() {
	// Register all types with their documentation.
	// Method lists are generated dynamically from the type implementations.

	RegisterType(STRING, "Immutable sequence of characters", func() []AttrSpec {
		return NewString("").Attrs()
	})

	RegisterType(LIST, "Mutable ordered collection of values", func() []AttrSpec {
		return NewList(nil).Attrs()
	})

	RegisterType(MAP, "Mutable key-value mapping with string keys", func() []AttrSpec {
		return NewMap(nil).Attrs()
	})

	RegisterType(TUPLE, "Immutable fixed-size grouping of values", nil)

	RegisterType(INT, "64-bit signed integer", nil)

	RegisterType(FLOAT, "64-bit floating point number", nil)

	RegisterType(BOOL, "Boolean value (true or false)", nil)

	RegisterType(NIL, "Absence of a value", nil)

	RegisterType(OPTION, "A value that is present (Some) or absent (None)", func() []AttrSpec {
		return None.Attrs()
	})

	RegisterType(RESULT, "A success value (Ok) or an error value (Err)", func() []AttrSpec {
		return NewOk(Nil).Attrs()
	})

	RegisterType(SEQ, "Lazy sequence of values", func() []AttrSpec {
		return seqAttrs.Specs()
	})

	RegisterType(RANGE, "Ascending sequence of integers", func() []AttrSpec {
		return NewRange(0, 0).Attrs()
	})

	RegisterType(STRUCT, "Instance of a declared struct type", nil)

	RegisterType(STRUCT_DEF, "Declared struct type", func() []AttrSpec {
		return structDefAttrs.Specs()
	})

	RegisterType(TIME, "Point in time with nanosecond precision", func() []AttrSpec {
		return NewTime(time.Now()).Attrs()
	})

	RegisterType(ERROR, "Error value carrying a message and source location", func() []AttrSpec {
		return Errorf("").Attrs()
	})

	RegisterType(FUNCTION, "User-defined function or closure", nil)

	RegisterType(BUILTIN, "Built-in function implemented in Go", func() []AttrSpec {
		return NewNoopBuiltin("").Attrs()
	})

	// Module attrs are dynamic based on contents, just register __name__
	RegisterType(MODULE, "Collection of related functions and values", nil)
}
