package object

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// *****************************************************************************
// Type assertion helpers
// *****************************************************************************

func AsBool(obj Object) (bool, error) {
	b, ok := obj.(*Bool)
	if !ok {
		return false, newTypeErrorf("expected a bool (%s given)", obj.Type())
	}
	return b.value, nil
}

func AsString(obj Object) (string, error) {
	switch obj := obj.(type) {
	case *String:
		return obj.value, nil
	default:
		return "", newTypeErrorf("expected a string (%s given)", obj.Type())
	}
}

func AsInt(obj Object) (int64, error) {
	switch obj := obj.(type) {
	case *Int:
		return obj.value, nil
	default:
		return 0, newTypeErrorf("expected an integer (%s given)", obj.Type())
	}
}

func AsFloat(obj Object) (float64, error) {
	switch obj := obj.(type) {
	case *Int:
		return float64(obj.value), nil
	case *Float:
		return obj.value, nil
	default:
		return 0.0, newTypeErrorf("expected a number (%s given)", obj.Type())
	}
}

func AsList(obj Object) (*List, error) {
	list, ok := obj.(*List)
	if !ok {
		return nil, newTypeErrorf("expected a list (%s given)", obj.Type())
	}
	return list, nil
}

func AsStringSlice(obj Object) ([]string, error) {
	list, ok := obj.(*List)
	if !ok {
		return nil, newTypeErrorf("expected a list (%s given)", obj.Type())
	}
	result := make([]string, 0, len(list.items))
	for _, item := range list.items {
		s, err := AsString(item)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func AsMap(obj Object) (*Map, error) {
	m, ok := obj.(*Map)
	if !ok {
		return nil, newTypeErrorf("expected a map (%s given)", obj.Type())
	}
	return m, nil
}

func AsTuple(obj Object) (*Tuple, error) {
	t, ok := obj.(*Tuple)
	if !ok {
		return nil, newTypeErrorf("expected a tuple (%s given)", obj.Type())
	}
	return t, nil
}

func AsOption(obj Object) (*Option, error) {
	o, ok := obj.(*Option)
	if !ok {
		return nil, newTypeErrorf("expected an option (%s given)", obj.Type())
	}
	return o, nil
}

func AsResult(obj Object) (*Result, error) {
	r, ok := obj.(*Result)
	if !ok {
		return nil, newTypeErrorf("expected a result (%s given)", obj.Type())
	}
	return r, nil
}

func AsTime(obj Object) (time.Time, error) {
	t, ok := obj.(*Time)
	if !ok {
		return time.Time{}, newTypeErrorf("expected a time (%s given)", obj.Type())
	}
	return t.value, nil
}

func AsError(obj Object) (*Error, error) {
	err, ok := obj.(*Error)
	if !ok {
		return nil, newTypeErrorf("expected an error object (%s given)", obj.Type())
	}
	return err, nil
}

// *****************************************************************************
// Go value conversion
// *****************************************************************************

// FromGo converts a Go value to a Marmoset Object. Object values pass
// through unchanged. An error is returned for Go types with no Marmoset
// representation.
func FromGo(v any) (Object, error) {
	switch v := v.(type) {
	case nil:
		return Nil, nil
	case Object:
		return v, nil
	case bool:
		return NewBool(v), nil
	case string:
		return NewString(v), nil
	case int:
		return NewInt(int64(v)), nil
	case int8:
		return NewInt(int64(v)), nil
	case int16:
		return NewInt(int64(v)), nil
	case int32:
		return NewInt(int64(v)), nil
	case int64:
		return NewInt(v), nil
	case uint:
		return NewInt(int64(v)), nil
	case uint8:
		return NewInt(int64(v)), nil
	case uint16:
		return NewInt(int64(v)), nil
	case uint32:
		return NewInt(int64(v)), nil
	case uint64:
		return NewInt(int64(v)), nil
	case float32:
		return NewFloat(float64(v)), nil
	case float64:
		return NewFloat(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return NewInt(i), nil
		}
		if f, err := v.Float64(); err == nil {
			return NewFloat(f), nil
		}
		return NewString(v.String()), nil
	case time.Time:
		return NewTime(v), nil
	case error:
		return NewError(v), nil
	case []string:
		return NewStringList(v), nil
	case []int64:
		items := make([]Object, 0, len(v))
		for _, item := range v {
			items = append(items, NewInt(item))
		}
		return NewList(items), nil
	case []any:
		items := make([]Object, 0, len(v))
		for _, item := range v {
			obj, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			items = append(items, obj)
		}
		return NewList(items), nil
	case map[string]any:
		items := make(map[string]Object, len(v))
		for key, value := range v {
			obj, err := FromGo(value)
			if err != nil {
				return nil, err
			}
			items[key] = obj
		}
		return NewMap(items), nil
	case map[string]Object:
		return NewMap(v), nil
	default:
		return nil, newTypeErrorf("no conversion for Go type %T", v)
	}
}

// FromGoType converts a Go value to a Marmoset Object. On error, an *Error
// object is returned.
func FromGoType(v any) Object {
	result, err := FromGo(v)
	if err != nil {
		return NewError(err)
	}
	return result
}

// AsObjects transforms a map containing arbitrary Go types to a map of
// Marmoset objects. If an item in the map is of a type that can't be
// converted, an error is returned.
func AsObjects(m map[string]any) (map[string]Object, error) {
	result := make(map[string]Object, len(m))
	for k, v := range m {
		obj, err := FromGo(v)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %q: %w", k, err)
		}
		result[k] = obj
	}
	return result, nil
}

// *****************************************************************************
// Rune conversion helpers
// *****************************************************************************

// RuneToObject converts a rune to a Marmoset String object.
func RuneToObject(r rune) Object {
	return NewString(string([]rune{r}))
}

// ObjectToRune converts a Marmoset Object to a rune.
func ObjectToRune(obj Object) (rune, error) {
	switch v := obj.(type) {
	case *String:
		if utf8.RuneCountInString(v.value) != 1 {
			return 0, newTypeErrorf("expected single character string (got length %d)", utf8.RuneCountInString(v.value))
		}
		r, _ := utf8.DecodeRuneInString(v.value)
		return r, nil
	case *Int:
		return rune(v.value), nil
	default:
		return 0, newTypeErrorf("expected string or int, got %s", obj.Type())
	}
}
