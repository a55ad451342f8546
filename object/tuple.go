package object

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/marmoset-lang/marmoset/op"
)

// Unit is the empty tuple. Blocks with no produced value and wrapped empty
// comprehensions evaluate to it.
var Unit = &Tuple{}

// Tuple is an immutable fixed-size grouping of values. One-element tuples
// display with a trailing comma, "(1,)", to distinguish them from
// parenthesized expressions.
type Tuple struct {
	items []Object
}

// NewTuple creates a Tuple of the given items. An empty or nil slice yields
// the Unit value.
func NewTuple(items []Object) *Tuple {
	if len(items) == 0 {
		return Unit
	}
	return &Tuple{items: items}
}

func (t *Tuple) Type() Type {
	return TUPLE
}

func (t *Tuple) Inspect() string {
	var out bytes.Buffer
	out.WriteString("(")
	items := make([]string, 0, len(t.items))
	for _, item := range t.items {
		items = append(items, item.Inspect())
	}
	out.WriteString(strings.Join(items, ", "))
	if len(t.items) == 1 {
		out.WriteString(",")
	}
	out.WriteString(")")
	return out.String()
}

func (t *Tuple) String() string {
	return t.Inspect()
}

// Value returns the underlying item slice.
func (t *Tuple) Value() []Object {
	return t.items
}

func (t *Tuple) Interface() any {
	items := make([]any, 0, len(t.items))
	for _, item := range t.items {
		items = append(items, item.Interface())
	}
	return items
}

func (t *Tuple) Compare(other Object) (int, error) {
	otherTuple, ok := other.(*Tuple)
	if !ok {
		return 0, newTypeErrorf("expected tuple (got %s)", other.Type())
	}
	if len(t.items) > len(otherTuple.items) {
		return 1, nil
	} else if len(t.items) < len(otherTuple.items) {
		return -1, nil
	}
	for i := 0; i < len(t.items); i++ {
		comparable, ok := t.items[i].(Comparable)
		if !ok {
			return 0, newTypeErrorf("%s object is not comparable", t.items[i].Type())
		}
		comp, err := comparable.Compare(otherTuple.items[i])
		if err != nil {
			return 0, err
		}
		if comp != 0 {
			return comp, nil
		}
	}
	return 0, nil
}

func (t *Tuple) Equals(other Object) bool {
	otherTuple, ok := other.(*Tuple)
	if !ok {
		return false
	}
	if len(t.items) != len(otherTuple.items) {
		return false
	}
	for i, item := range t.items {
		if !Equals(item, otherTuple.items[i]) {
			return false
		}
	}
	return true
}

func (t *Tuple) Attrs() []AttrSpec {
	return nil
}

func (t *Tuple) GetAttr(name string) (Object, bool) {
	return nil, false
}

func (t *Tuple) SetAttr(name string, value Object) error {
	return TypeErrorf("tuple has no attribute %q", name)
}

func (t *Tuple) IsTruthy() bool {
	return len(t.items) > 0
}

func (t *Tuple) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for tuple: %v", opType)
}

// GetItem implements Container indexing, with negatives counting from the
// end.
func (t *Tuple) GetItem(key Object) (Object, *Error) {
	indexObj, ok := key.(*Int)
	if !ok {
		return nil, TypeErrorf("tuple index must be an int (got %s)", key.Type())
	}
	idx, err := ResolveIndex(indexObj.value, int64(len(t.items)))
	if err != nil {
		return nil, NewError(err)
	}
	return t.items[idx], nil
}

func (t *Tuple) SetItem(key, value Object) *Error {
	return TypeErrorf("tuples are immutable")
}

func (t *Tuple) Contains(item Object) *Bool {
	for _, v := range t.items {
		if Equals(v, item) {
			return True
		}
	}
	return False
}

func (t *Tuple) Len() *Int {
	return NewInt(int64(len(t.items)))
}

func (t *Tuple) Size() int {
	return len(t.items)
}

// Enumerate implements Enumerable, yielding (index, item).
func (t *Tuple) Enumerate(ctx context.Context, fn func(key, value Object) bool) error {
	for i, item := range t.items {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !fn(NewInt(int64(i)), item) {
			break
		}
	}
	return nil
}

func (t *Tuple) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.items)
}
