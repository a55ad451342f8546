package object

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marmoset-lang/marmoset/op"
)

var stringAttrs = NewAttrRegistry[*String]("string")

func init() {
	stringAttrs.Define("compare").
		Doc("Compare to another string (-1, 0, or 1)").
		Arg("other").
		Returns("int").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			other, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewInt(int64(strings.Compare(s.value, other))), nil
		})

	stringAttrs.Define("contains").
		Doc("Whether the string contains the given substring").
		Arg("substring").
		Returns("bool").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			sub, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewBool(strings.Contains(s.value, sub)), nil
		})

	stringAttrs.Define("count").
		Doc("Count non-overlapping occurrences of a substring").
		Arg("substring").
		Returns("int").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			sub, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewInt(int64(strings.Count(s.value, sub))), nil
		})

	stringAttrs.Define("fields").
		Doc("Split the string around runs of whitespace").
		Returns("list").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			return NewStringList(strings.Fields(s.value)), nil
		})

	stringAttrs.Define("has_prefix").
		Doc("Whether the string starts with the given prefix").
		Arg("prefix").
		Returns("bool").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			prefix, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewBool(strings.HasPrefix(s.value, prefix)), nil
		})

	stringAttrs.Define("has_suffix").
		Doc("Whether the string ends with the given suffix").
		Arg("suffix").
		Returns("bool").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			suffix, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewBool(strings.HasSuffix(s.value, suffix)), nil
		})

	stringAttrs.Define("index").
		Doc("Index of the first occurrence of a substring, or -1").
		Arg("substring").
		Returns("int").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			sub, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewInt(int64(strings.Index(s.value, sub))), nil
		})

	stringAttrs.Define("iter").
		Doc("Iterate the characters of the string as a sequence").
		Returns("seq").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			return FromEnumerable("string", s), nil
		})

	stringAttrs.Define("join").
		Doc("Join a list of strings with this string as the separator").
		Arg("items").
		Returns("string").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			list, err := AsList(args[0])
			if err != nil {
				return nil, err
			}
			parts := make([]string, 0, len(list.items))
			for _, item := range list.items {
				part, ok := item.(*String)
				if !ok {
					return nil, newTypeErrorf("string.join: list contained a non-string (got %s)", item.Type())
				}
				parts = append(parts, part.value)
			}
			return NewString(strings.Join(parts, s.value)), nil
		})

	stringAttrs.Define("last_index").
		Doc("Index of the last occurrence of a substring, or -1").
		Arg("substring").
		Returns("int").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			sub, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewInt(int64(strings.LastIndex(s.value, sub))), nil
		})

	stringAttrs.Define("repeat").
		Doc("Repeat the string n times").
		Arg("n").
		Returns("string").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			n, err := AsInt(args[0])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, ValueErrorf("string.repeat: negative count")
			}
			return NewString(strings.Repeat(s.value, int(n))), nil
		})

	stringAttrs.Define("replace_all").
		Doc("Replace all occurrences of old with new").
		Args("old", "new").
		Returns("string").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			oldStr, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			newStr, err := AsString(args[1])
			if err != nil {
				return nil, err
			}
			return NewString(strings.ReplaceAll(s.value, oldStr, newStr)), nil
		})

	stringAttrs.Define("split").
		Doc("Split the string on a separator").
		Arg("separator").
		Returns("list").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			sep, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewStringList(strings.Split(s.value, sep)), nil
		})

	stringAttrs.Define("to_lower").
		Doc("Lowercase the string").
		Returns("string").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			return NewString(strings.ToLower(s.value)), nil
		})

	stringAttrs.Define("to_upper").
		Doc("Uppercase the string").
		Returns("string").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			return NewString(strings.ToUpper(s.value)), nil
		})

	stringAttrs.Define("trim").
		Doc("Trim the given cutset from both ends").
		Arg("cutset").
		Returns("string").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			cutset, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewString(strings.Trim(s.value, cutset)), nil
		})

	stringAttrs.Define("trim_prefix").
		Doc("Remove the given prefix, when present").
		Arg("prefix").
		Returns("string").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			prefix, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewString(strings.TrimPrefix(s.value, prefix)), nil
		})

	stringAttrs.Define("trim_space").
		Doc("Trim leading and trailing whitespace").
		Returns("string").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			return NewString(strings.TrimSpace(s.value)), nil
		})

	stringAttrs.Define("trim_suffix").
		Doc("Remove the given suffix, when present").
		Arg("suffix").
		Returns("string").
		Impl(func(s *String, ctx context.Context, args ...Object) (Object, error) {
			suffix, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewString(strings.TrimSuffix(s.value, suffix)), nil
		})
}

// String is an immutable sequence of characters. Indexing and iteration
// operate on characters, not bytes.
type String struct {
	value string

	// memoized character slice
	runes []rune
}

// NewString creates a String from a Go string.
func NewString(value string) *String {
	return &String{value: value}
}

func (s *String) Type() Type {
	return STRING
}

func (s *String) Inspect() string {
	return fmt.Sprintf("%q", s.value)
}

func (s *String) String() string {
	return s.value
}

// Value returns the underlying Go string.
func (s *String) Value() string {
	return s.value
}

func (s *String) Interface() any {
	return s.value
}

func (s *String) Runes() []rune {
	if s.runes == nil {
		s.runes = []rune(s.value)
	}
	return s.runes
}

func (s *String) Compare(other Object) (int, error) {
	otherStr, ok := other.(*String)
	if !ok {
		return 0, newTypeErrorf("expected string (got %s)", other.Type())
	}
	return strings.Compare(s.value, otherStr.value), nil
}

func (s *String) Equals(other Object) bool {
	otherStr, ok := other.(*String)
	if !ok {
		return false
	}
	return s.value == otherStr.value
}

func (s *String) Attrs() []AttrSpec {
	return stringAttrs.Specs()
}

func (s *String) GetAttr(name string) (Object, bool) {
	return stringAttrs.GetAttr(s, name)
}

func (s *String) SetAttr(name string, value Object) error {
	return TypeErrorf("string has no attribute %q", name)
}

func (s *String) IsTruthy() bool {
	return s.value != ""
}

func (s *String) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	switch opType {
	case op.Add:
		otherStr, ok := right.(*String)
		if !ok {
			return nil, newTypeErrorf("unsupported operation for string: + (got %s)", right.Type())
		}
		return NewString(s.value + otherStr.value), nil
	default:
		return nil, newTypeErrorf("unsupported operation for string: %v", opType)
	}
}

// GetItem implements Container: the character at an index, with negatives
// counting from the end.
func (s *String) GetItem(key Object) (Object, *Error) {
	idx, err := AsInt(key)
	if err != nil {
		return nil, NewError(err)
	}
	runes := s.Runes()
	resolved, resolveErr := ResolveIndex(idx, int64(len(runes)))
	if resolveErr != nil {
		return nil, NewError(resolveErr)
	}
	return NewString(string(runes[resolved])), nil
}

func (s *String) SetItem(key, value Object) *Error {
	return TypeErrorf("strings are immutable")
}

func (s *String) Contains(item Object) *Bool {
	sub, ok := item.(*String)
	if !ok {
		return False
	}
	return NewBool(strings.Contains(s.value, sub.value))
}

func (s *String) Len() *Int {
	return NewInt(int64(len(s.Runes())))
}

// Enumerate implements Enumerable, yielding (index, character).
func (s *String) Enumerate(ctx context.Context, fn func(key, value Object) bool) error {
	for i, r := range s.Runes() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !fn(NewInt(int64(i)), NewString(string(r))) {
			break
		}
	}
	return nil
}

func (s *String) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}
