package object

func Require(funcName string, count int, args []Object) *Error {
	nArgs := len(args)
	if nArgs != count {
		if count == 1 {
			return NewError(newArgsErrorf(
				"args error: %s() takes exactly 1 argument (%d given)",
				funcName, nArgs))
		}
		return NewError(newArgsErrorf(
			"args error: %s() takes exactly %d arguments (%d given)",
			funcName, count, nArgs))
	}
	return nil
}

func RequireRange(funcName string, min, max int, args []Object) *Error {
	nArgs := len(args)
	if nArgs < min {
		return NewError(newArgsErrorf(
			"args error: %s() takes at least %d %s (%d given)",
			funcName, min, pluralize("argument", min > 1), nArgs))
	} else if nArgs > max {
		return NewError(newArgsErrorf(
			"args error: %s() takes at most %d %s (%d given)",
			funcName, max, pluralize("argument", max > 1), nArgs))
	}
	return nil
}

func NewArgsError(fn string, takes, given int) *Error {
	return NewError(newArgsErrorf("args error: %s() takes exactly %d arguments (%d given)",
		fn, takes, given))
}

func NewArgsRangeError(fn string, takesMin, takesMax, given int) *Error {
	if takesMax-takesMin == 1 {
		return NewError(newArgsErrorf("args error: %s() takes %d or %d arguments (%d given)",
			fn, takesMin, takesMax, given))
	}
	return NewError(newArgsErrorf("args error: %s() takes between %d and %d arguments (%d given)",
		fn, takesMin, takesMax, given))
}

func pluralize(s string, do bool) string {
	if do {
		return s + "s"
	}
	return s
}
