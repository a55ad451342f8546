package object

import (
	"fmt"

	"github.com/marmoset-lang/marmoset/op"
)

var errorAttrs = NewAttrRegistry[*Error]("error")

func init() {
	errorAttrs.Define("message").
		Doc("The error message").
		Returns("string").
		Getter(func(e *Error) Object {
			return e.Message()
		})

	errorAttrs.Define("kind").
		Doc("The error kind, such as \"type error\" or \"value error\"").
		Returns("string").
		Getter(func(e *Error) Object {
			if e.structured != nil {
				return NewString(e.structured.Kind.String())
			}
			return NewString("error")
		})

	errorAttrs.Define("line").
		Doc("The 1-based source line the error points at, or 0").
		Returns("int").
		Getter(func(e *Error) Object {
			if e.structured != nil {
				return NewInt(int64(e.structured.Location.Line))
			}
			return NewInt(0)
		})

	errorAttrs.Define("column").
		Doc("The 1-based source column the error points at, or 0").
		Returns("int").
		Getter(func(e *Error) Object {
			if e.structured != nil {
				return NewInt(int64(e.structured.Location.Column))
			}
			return NewInt(0)
		})

	errorAttrs.Define("filename").
		Doc("The source filename, or nil when unknown").
		Returns("string").
		Getter(func(e *Error) Object {
			if e.structured != nil && e.structured.Location.Filename != "" {
				return NewString(e.structured.Location.Filename)
			}
			return Nil
		})

	errorAttrs.Define("source").
		Doc("The source line text, or nil when unknown").
		Returns("string").
		Getter(func(e *Error) Object {
			if e.structured != nil && e.structured.Location.Source != "" {
				return NewString(e.structured.Location.Source)
			}
			return Nil
		})

	errorAttrs.Define("stack").
		Doc("Call stack frames as a list of maps").
		Returns("list").
		Getter(func(e *Error) Object {
			if e.structured == nil || len(e.structured.Stack) == 0 {
				return NewList(nil)
			}
			frames := make([]Object, len(e.structured.Stack))
			for i, frame := range e.structured.Stack {
				frames[i] = NewMap(map[string]Object{
					"function": NewString(frame.Function),
					"line":     NewInt(int64(frame.Location.Line)),
					"column":   NewInt(int64(frame.Location.Column)),
					"filename": NewString(frame.Location.Filename),
				})
			}
			return NewList(frames)
		})
}

// Error wraps a Go error interface and implements Object.
type Error struct {
	err        error
	raised     bool
	structured *StructuredError
}

func NewError(err error) *Error {
	switch err := err.(type) {
	case *Error: // unwrap to get the inner error, to avoid unhelpful nesting
		return &Error{err: err.Unwrap(), raised: true, structured: err.structured}
	case *StructuredError:
		return &Error{err: err, raised: true, structured: err}
	default:
		return &Error{err: err, raised: true}
	}
}

// NewErrorFromStructured creates a new Error from a StructuredError.
func NewErrorFromStructured(se *StructuredError) *Error {
	return &Error{err: se, raised: true, structured: se}
}

func Errorf(format string, a ...any) *Error {
	var args []any
	for _, arg := range a {
		if obj, ok := arg.(Object); ok {
			args = append(args, obj.Interface())
		} else {
			args = append(args, arg)
		}
	}
	return &Error{err: fmt.Errorf(format, args...), raised: true}
}

func (e *Error) Type() Type {
	return ERROR
}

func (e *Error) Inspect() string {
	return fmt.Sprintf("error(%q)", e.err.Error())
}

func (e *Error) String() string {
	return e.err.Error()
}

func (e *Error) Value() error {
	return e.err
}

func (e *Error) Interface() any {
	return e.err
}

func (e *Error) Compare(other Object) (int, error) {
	otherErr, ok := other.(*Error)
	if !ok {
		return 0, TypeErrorf("unable to compare error and %s", other.Type())
	}
	thisMsg := e.Message().Value()
	otherMsg := otherErr.Message().Value()
	if thisMsg == otherMsg && e.raised == otherErr.raised {
		return 0, nil
	}
	if thisMsg > otherMsg {
		return 1, nil
	}
	if thisMsg < otherMsg {
		return -1, nil
	}
	if e.raised && !otherErr.raised {
		return 1, nil
	}
	if !e.raised && otherErr.raised {
		return -1, nil
	}
	return 0, nil
}

func (e *Error) Equals(other Object) bool {
	otherError, ok := other.(*Error)
	if !ok {
		return false
	}
	return e.Message().Value() == otherError.Message().Value() && e.raised == otherError.raised
}

func (e *Error) Attrs() []AttrSpec {
	return errorAttrs.Specs()
}

func (e *Error) GetAttr(name string) (Object, bool) {
	return errorAttrs.GetAttr(e, name)
}

func (e *Error) SetAttr(name string, value Object) error {
	return TypeErrorf("error has no attribute %q", name)
}

func (e *Error) IsTruthy() bool {
	return true
}

func (e *Error) Message() *String {
	return NewString(e.err.Error())
}

func (e *Error) WithRaised(value bool) *Error {
	e.raised = value
	return e
}

func (e *Error) IsRaised() bool {
	return e.raised
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for error: %v", opType)
}

func (e *Error) MarshalJSON() ([]byte, error) {
	return nil, TypeErrorf("unable to marshal error")
}

// Structured returns the underlying StructuredError if present.
func (e *Error) Structured() *StructuredError {
	return e.structured
}

// FriendlyErrorMessage returns a human-friendly error message if the error
// has structured data, otherwise returns the standard error string.
func (e *Error) FriendlyErrorMessage() string {
	if e.structured != nil {
		return e.structured.FriendlyErrorMessage()
	}
	return e.err.Error()
}

func IsError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR
	}
	return false
}
