package object

import (
	"bytes"
	"context"
	"strings"

	"github.com/marmoset-lang/marmoset/op"
)

var structDefAttrs = NewAttrRegistry[*StructDef]("struct_def")

func init() {
	structDefAttrs.Define("name").
		Doc("The declared struct type name").
		Returns("string").
		Getter(func(d *StructDef) Object {
			return NewString(d.name)
		})

	structDefAttrs.Define("fields").
		Doc("The field names in declaration order").
		Returns("list").
		Getter(func(d *StructDef) Object {
			return NewStringList(d.fields)
		})
}

// StructDef is the runtime form of a struct type declaration. Positional
// defs ("struct Pair(first, second)") are callable and construct instances
// from positional arguments; named defs ("struct Point{x, y}") are
// instantiated with literal syntax instead.
type StructDef struct {
	name   string
	fields []string
	named  bool
}

// NewStructDef creates a struct type with the given field names. Pass
// named=true for the braced declaration form.
func NewStructDef(name string, fields []string, named bool) *StructDef {
	return &StructDef{name: name, fields: fields, named: named}
}

func (d *StructDef) Name() string {
	return d.name
}

func (d *StructDef) Fields() []string {
	return d.fields
}

func (d *StructDef) Named() bool {
	return d.named
}

// FieldIndex returns the position of a field name, or -1.
func (d *StructDef) FieldIndex(name string) int {
	for i, f := range d.fields {
		if f == name {
			return i
		}
	}
	return -1
}

// Call implements Callable for positional struct construction.
func (d *StructDef) Call(ctx context.Context, args ...Object) (Object, error) {
	if d.named {
		return nil, newTypeErrorf("%s is a named struct: use %s{...} to construct it", d.name, d.name)
	}
	if len(args) != len(d.fields) {
		return nil, newArgsErrorf("%s() takes exactly %d arguments (%d given)",
			d.name, len(d.fields), len(args))
	}
	values := make([]Object, len(args))
	copy(values, args)
	return &Struct{def: d, values: values}, nil
}

func (d *StructDef) Type() Type {
	return STRUCT_DEF
}

func (d *StructDef) Inspect() string {
	var out bytes.Buffer
	out.WriteString("struct ")
	out.WriteString(d.name)
	if d.named {
		out.WriteString("{")
		out.WriteString(strings.Join(d.fields, ", "))
		out.WriteString("}")
	} else {
		out.WriteString("(")
		out.WriteString(strings.Join(d.fields, ", "))
		out.WriteString(")")
	}
	return out.String()
}

func (d *StructDef) String() string {
	return d.Inspect()
}

func (d *StructDef) Interface() any {
	return d
}

func (d *StructDef) Equals(other Object) bool {
	return d == other
}

func (d *StructDef) Attrs() []AttrSpec {
	return structDefAttrs.Specs()
}

func (d *StructDef) GetAttr(name string) (Object, bool) {
	return structDefAttrs.GetAttr(d, name)
}

func (d *StructDef) SetAttr(name string, value Object) error {
	return TypeErrorf("struct_def has no attribute %q", name)
}

func (d *StructDef) IsTruthy() bool {
	return true
}

func (d *StructDef) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for struct_def: %v", opType)
}

// Struct is an instance of a struct type: a fixed set of named fields with
// mutable values. Positional instances display as "Pair(1, 2)" and named
// instances as "Point{x: 1, y: 2}".
type Struct struct {
	def    *StructDef
	values []Object
}

// NewStruct creates an instance of a struct type. The values are matched
// with the def's fields by position.
func NewStruct(def *StructDef, values []Object) (*Struct, error) {
	if len(values) != len(def.fields) {
		return nil, newArgsErrorf("%s expects %d field values (%d given)",
			def.name, len(def.fields), len(values))
	}
	return &Struct{def: def, values: values}, nil
}

// Def returns the type this instance belongs to.
func (s *Struct) Def() *StructDef {
	return s.def
}

// Values returns the field values in declaration order.
func (s *Struct) Values() []Object {
	return s.values
}

// Field looks up a field value by name.
func (s *Struct) Field(name string) (Object, bool) {
	idx := s.def.FieldIndex(name)
	if idx < 0 {
		return nil, false
	}
	return s.values[idx], true
}

func (s *Struct) Type() Type {
	return STRUCT
}

func (s *Struct) Inspect() string {
	var out bytes.Buffer
	out.WriteString(s.def.name)
	if s.def.named {
		out.WriteString("{")
		for i, field := range s.def.fields {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(field)
			out.WriteString(": ")
			out.WriteString(s.values[i].Inspect())
		}
		out.WriteString("}")
	} else {
		out.WriteString("(")
		for i, value := range s.values {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(value.Inspect())
		}
		out.WriteString(")")
	}
	return out.String()
}

func (s *Struct) String() string {
	return s.Inspect()
}

func (s *Struct) Interface() any {
	result := make(map[string]any, len(s.values))
	for i, field := range s.def.fields {
		result[field] = s.values[i].Interface()
	}
	return result
}

func (s *Struct) Equals(other Object) bool {
	otherStruct, ok := other.(*Struct)
	if !ok {
		return false
	}
	if s.def != otherStruct.def {
		return false
	}
	for i, value := range s.values {
		if !Equals(value, otherStruct.values[i]) {
			return false
		}
	}
	return true
}

func (s *Struct) Attrs() []AttrSpec {
	specs := make([]AttrSpec, 0, len(s.def.fields))
	for _, field := range s.def.fields {
		specs = append(specs, AttrSpec{Name: field, Doc: "struct field"})
	}
	return specs
}

func (s *Struct) GetAttr(name string) (Object, bool) {
	return s.Field(name)
}

func (s *Struct) SetAttr(name string, value Object) error {
	idx := s.def.FieldIndex(name)
	if idx < 0 {
		return TypeErrorf("%s has no field %q", s.def.name, name)
	}
	s.values[idx] = value
	return nil
}

func (s *Struct) IsTruthy() bool {
	return true
}

func (s *Struct) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for struct: %v", opType)
}

// Enumerate implements Enumerable, yielding (field, value) in declaration
// order. This is what positional destructuring patterns consume.
func (s *Struct) Enumerate(ctx context.Context, fn func(key, value Object) bool) error {
	for i, field := range s.def.fields {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !fn(NewString(field), s.values[i]) {
			break
		}
	}
	return nil
}
