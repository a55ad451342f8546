package object

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/marmoset-lang/marmoset/op"
)

var mapAttrs = NewAttrRegistry[*Map]("map")

func init() {
	mapAttrs.Define("clear").
		Doc("Remove all entries").
		Returns("map").
		Impl(func(m *Map, ctx context.Context, args ...Object) (Object, error) {
			m.Clear()
			return m, nil
		})

	mapAttrs.Define("contains").
		Doc("Whether the map has the given key").
		Arg("key").
		Returns("bool").
		Impl(func(m *Map, ctx context.Context, args ...Object) (Object, error) {
			return m.Contains(args[0]), nil
		})

	mapAttrs.Define("copy").
		Doc("Create a shallow copy").
		Returns("map").
		Impl(func(m *Map, ctx context.Context, args ...Object) (Object, error) {
			return m.Copy(), nil
		})

	mapAttrs.Define("delete").
		Doc("Remove the entry for a key, when present").
		Arg("key").
		Returns("map").
		Impl(func(m *Map, ctx context.Context, args ...Object) (Object, error) {
			key, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			m.Delete(key)
			return m, nil
		})

	mapAttrs.Define("get").
		Doc("Value for a key, or a default (nil unless given) when absent").
		Arg("key").
		OptionalArg("default").
		Impl(func(m *Map, ctx context.Context, args ...Object) (Object, error) {
			key, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			value, found := m.Get(key)
			if found {
				return value, nil
			}
			if len(args) == 2 {
				return args[1], nil
			}
			return Nil, nil
		})

	mapAttrs.Define("items").
		Doc("List of (key, value) tuples in sorted key order").
		Returns("list").
		Impl(func(m *Map, ctx context.Context, args ...Object) (Object, error) {
			return m.Items(), nil
		})

	mapAttrs.Define("iter").
		Doc("Iterate (key, value) tuples as a sequence, in sorted key order").
		Returns("seq").
		Impl(func(m *Map, ctx context.Context, args ...Object) (Object, error) {
			return m.Iter(), nil
		})

	mapAttrs.Define("keys").
		Doc("Sorted list of keys").
		Returns("list").
		Impl(func(m *Map, ctx context.Context, args ...Object) (Object, error) {
			return m.Keys(), nil
		})

	mapAttrs.Define("values").
		Doc("List of values in sorted key order").
		Returns("list").
		Impl(func(m *Map, ctx context.Context, args ...Object) (Object, error) {
			return m.Values(), nil
		})
}

// Map is a mutable mapping from string keys to objects. Iteration and
// inspection visit entries in sorted key order, so map output is
// deterministic.
type Map struct {
	items map[string]Object

	// Used to avoid the possibility of infinite recursion when inspecting.
	inspectActive bool
}

// NewMap creates a Map from a Go map of objects.
func NewMap(items map[string]Object) *Map {
	if items == nil {
		items = map[string]Object{}
	}
	return &Map{items: items}
}

func (m *Map) Type() Type {
	return MAP
}

func (m *Map) Inspect() string {
	// A map can contain itself. Detect if we're already inspecting the map
	// and return a placeholder if so.
	if m.inspectActive {
		return "{...}"
	}
	m.inspectActive = true
	defer func() { m.inspectActive = false }()

	var out bytes.Buffer
	out.WriteString("{")
	for i, key := range m.SortedKeys() {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(fmt.Sprintf("%q: %s", key, m.items[key].Inspect()))
	}
	out.WriteString("}")
	return out.String()
}

func (m *Map) String() string {
	return m.Inspect()
}

// Value returns the underlying Go map.
func (m *Map) Value() map[string]Object {
	return m.items
}

func (m *Map) Interface() any {
	result := make(map[string]any, len(m.items))
	for key, value := range m.items {
		result[key] = value.Interface()
	}
	return result
}

// SortedKeys returns the keys in ascending order.
func (m *Map) SortedKeys() []string {
	keys := make([]string, 0, len(m.items))
	for key := range m.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get looks up a key directly.
func (m *Map) Get(key string) (Object, bool) {
	value, found := m.items[key]
	return value, found
}

// Set stores a value under a key.
func (m *Map) Set(key string, value Object) {
	m.items[key] = value
}

// Delete removes the entry for a key.
func (m *Map) Delete(key string) {
	delete(m.items, key)
}

// Clear removes all entries.
func (m *Map) Clear() {
	m.items = map[string]Object{}
}

// Copy returns a shallow copy of the map.
func (m *Map) Copy() *Map {
	items := make(map[string]Object, len(m.items))
	for key, value := range m.items {
		items[key] = value
	}
	return &Map{items: items}
}

// Keys returns the sorted keys as a list of strings.
func (m *Map) Keys() Object {
	return NewStringList(m.SortedKeys())
}

// Values returns the values in sorted key order.
func (m *Map) Values() Object {
	keys := m.SortedKeys()
	values := make([]Object, 0, len(keys))
	for _, key := range keys {
		values = append(values, m.items[key])
	}
	return NewList(values)
}

// Items returns (key, value) tuples in sorted key order.
func (m *Map) Items() Object {
	keys := m.SortedKeys()
	items := make([]Object, 0, len(keys))
	for _, key := range keys {
		items = append(items, NewTuple([]Object{NewString(key), m.items[key]}))
	}
	return NewList(items)
}

// Iter returns a sequence of (key, value) tuples in sorted key order.
func (m *Map) Iter() *Seq {
	return NewSeq("map", func(ctx context.Context, yield func(value Object) bool) error {
		for _, key := range m.SortedKeys() {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !yield(NewTuple([]Object{NewString(key), m.items[key]})) {
				break
			}
		}
		return nil
	})
}

func (m *Map) Attrs() []AttrSpec {
	return mapAttrs.Specs()
}

func (m *Map) GetAttr(name string) (Object, bool) {
	return mapAttrs.GetAttr(m, name)
}

func (m *Map) SetAttr(name string, value Object) error {
	return TypeErrorf("map has no attribute %q", name)
}

func (m *Map) IsTruthy() bool {
	return len(m.items) > 0
}

func (m *Map) Equals(other Object) bool {
	otherMap, ok := other.(*Map)
	if !ok {
		return false
	}
	if len(m.items) != len(otherMap.items) {
		return false
	}
	for key, value := range m.items {
		otherValue, found := otherMap.items[key]
		if !found || !Equals(value, otherValue) {
			return false
		}
	}
	return true
}

func (m *Map) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for map: %v", opType)
}

// GetItem implements Container lookup by string key.
func (m *Map) GetItem(key Object) (Object, *Error) {
	keyStr, ok := key.(*String)
	if !ok {
		return nil, TypeErrorf("map key must be a string (got %s)", key.Type())
	}
	value, found := m.items[keyStr.value]
	if !found {
		return nil, ValueErrorf("map key not found: %q", keyStr.value)
	}
	return value, nil
}

// SetItem implements the [key] = value operator for a container type.
func (m *Map) SetItem(key, value Object) *Error {
	keyStr, ok := key.(*String)
	if !ok {
		return TypeErrorf("map key must be a string (got %s)", key.Type())
	}
	m.items[keyStr.value] = value
	return nil
}

// Contains returns true if the given key is present.
func (m *Map) Contains(key Object) *Bool {
	keyStr, ok := key.(*String)
	if !ok {
		return False
	}
	_, found := m.items[keyStr.value]
	return NewBool(found)
}

// Len returns the number of entries.
func (m *Map) Len() *Int {
	return NewInt(int64(len(m.items)))
}

func (m *Map) Size() int {
	return len(m.items)
}

// Enumerate implements Enumerable, yielding (key, value) in sorted key
// order.
func (m *Map) Enumerate(ctx context.Context, fn func(key, value Object) bool) error {
	for _, key := range m.SortedKeys() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !fn(NewString(key), m.items[key]) {
			break
		}
	}
	return nil
}

func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.items)
}
