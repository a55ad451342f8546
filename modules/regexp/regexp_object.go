package regexp

import (
	"context"
	"fmt"
	"regexp"

	"github.com/marmoset-lang/marmoset/object"
	"github.com/marmoset-lang/marmoset/op"
)

const REGEXP object.Type = "regexp"

var regexpAttrs = object.NewAttrRegistry[*Regexp]("regexp")

func init() {
	regexpAttrs.Define("match").
		Doc("Whether the string contains a match").
		Arg("s").
		Returns("bool").
		Impl(func(r *Regexp, ctx context.Context, args ...object.Object) (object.Object, error) {
			s, err := object.AsString(args[0])
			if err != nil {
				return nil, err
			}
			return object.NewBool(r.value.MatchString(s)), nil
		})

	regexpAttrs.Define("find").
		Doc("Some(leftmost match) in the string, or None").
		Arg("s").
		Returns("option").
		Impl(func(r *Regexp, ctx context.Context, args ...object.Object) (object.Object, error) {
			s, err := object.AsString(args[0])
			if err != nil {
				return nil, err
			}
			loc := r.value.FindStringIndex(s)
			if loc == nil {
				return object.None, nil
			}
			return object.NewSome(object.NewString(s[loc[0]:loc[1]])), nil
		})

	regexpAttrs.Define("find_all").
		Doc("All non-overlapping matches, up to limit when given").
		Arg("s").
		OptionalArg("limit").
		Returns("list").
		Impl(func(r *Regexp, ctx context.Context, args ...object.Object) (object.Object, error) {
			s, err := object.AsString(args[0])
			if err != nil {
				return nil, err
			}
			n := -1
			if len(args) == 2 {
				limit, err := object.AsInt(args[1])
				if err != nil {
					return nil, err
				}
				n = int(limit)
			}
			return object.NewStringList(r.value.FindAllString(s, n)), nil
		})

	regexpAttrs.Define("find_submatch").
		Doc("Some(list of match and capture groups), or None").
		Arg("s").
		Returns("option").
		Impl(func(r *Regexp, ctx context.Context, args ...object.Object) (object.Object, error) {
			s, err := object.AsString(args[0])
			if err != nil {
				return nil, err
			}
			groups := r.value.FindStringSubmatch(s)
			if groups == nil {
				return object.None, nil
			}
			return object.NewSome(object.NewStringList(groups)), nil
		})

	regexpAttrs.Define("replace_all").
		Doc("Replace every match with the replacement, expanding $1-style group references").
		Args("s", "replacement").
		Returns("string").
		Impl(func(r *Regexp, ctx context.Context, args ...object.Object) (object.Object, error) {
			s, err := object.AsString(args[0])
			if err != nil {
				return nil, err
			}
			replacement, err := object.AsString(args[1])
			if err != nil {
				return nil, err
			}
			return object.NewString(r.value.ReplaceAllString(s, replacement)), nil
		})

	regexpAttrs.Define("split").
		Doc("Split the string around matches, up to limit pieces when given").
		Arg("s").
		OptionalArg("limit").
		Returns("list").
		Impl(func(r *Regexp, ctx context.Context, args ...object.Object) (object.Object, error) {
			s, err := object.AsString(args[0])
			if err != nil {
				return nil, err
			}
			n := -1
			if len(args) == 2 {
				limit, err := object.AsInt(args[1])
				if err != nil {
					return nil, err
				}
				n = int(limit)
			}
			return object.NewStringList(r.value.Split(s, n)), nil
		})
}

// Regexp wraps a compiled Go regular expression as a language object.
type Regexp struct {
	value *regexp.Regexp
}

func NewRegexp(value *regexp.Regexp) *Regexp {
	return &Regexp{value: value}
}

func (r *Regexp) Type() object.Type {
	return REGEXP
}

func (r *Regexp) Inspect() string {
	return fmt.Sprintf("regexp(%q)", r.value.String())
}

func (r *Regexp) String() string {
	return r.Inspect()
}

func (r *Regexp) Interface() any {
	return r.value
}

func (r *Regexp) Equals(other object.Object) bool {
	if other, ok := other.(*Regexp); ok {
		return r.value.String() == other.value.String()
	}
	return false
}

func (r *Regexp) IsTruthy() bool {
	return true
}

func (r *Regexp) Attrs() []object.AttrSpec {
	return regexpAttrs.Specs()
}

func (r *Regexp) GetAttr(name string) (object.Object, bool) {
	return regexpAttrs.GetAttr(r, name)
}

func (r *Regexp) SetAttr(name string, value object.Object) error {
	return fmt.Errorf("type error: cannot set attribute %q on a regexp", name)
}

func (r *Regexp) RunOperation(opType op.BinaryOpType, right object.Object) (object.Object, error) {
	return nil, fmt.Errorf("type error: unsupported operation for regexp: %v", opType)
}

func (r *Regexp) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", r.value.String())), nil
}
