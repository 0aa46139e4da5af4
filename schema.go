package domainmap

import (
	"reflect"
)

// binding ties a FieldSpec to the struct layout it was derived from.
type binding struct {
	spec      FieldSpec
	index     []int        // path from the class struct to the field
	container reflect.Type // declared field type
	target    reflect.Type // concrete value type; element type for lists
	listType  reflect.Type // concrete slice type for lists
	ref       *RegisteredSchema
	example   any
}

// inherit returns a copy of b addressed through the embedded parent field at
// embedIndex.
func (b *binding) inherit(embedIndex int) *binding {
	cb := *b
	cb.index = append([]int{embedIndex}, b.index...)
	return &cb
}

// schemaCore is shared by the OutputSchema and InputSchema of one class.
type schemaCore struct {
	name   string
	parent string
	typ    reflect.Type
	fields []*binding
	byName map[string]int
}

func newSchemaCore(name, parent string, typ reflect.Type, fields []*binding) *schemaCore {
	byName := make(map[string]int, len(fields))
	for i, b := range fields {
		byName[b.spec.Name] = i
	}
	return &schemaCore{name: name, parent: parent, typ: typ, fields: fields, byName: byName}
}

// Name returns the class name.
func (c *schemaCore) Name() string { return c.name }

// Parent returns the parent class name, empty for root classes.
func (c *schemaCore) Parent() string { return c.parent }

// Type returns the Go type of the class.
func (c *schemaCore) Type() reflect.Type { return c.typ }

// Fields returns the field specs, inherited fields first.
func (c *schemaCore) Fields() []FieldSpec {
	out := make([]FieldSpec, len(c.fields))
	for i, b := range c.fields {
		out[i] = b.spec
	}
	return out
}

// Field returns the spec of the named field.
func (c *schemaCore) Field(name string) (FieldSpec, bool) {
	i, ok := c.byName[name]
	if !ok {
		return FieldSpec{}, false
	}
	return c.fields[i].spec, true
}

// Required returns the names of required fields in field order.
func (c *schemaCore) Required() []string {
	var out []string
	for _, b := range c.fields {
		if b.spec.Required {
			out = append(out, b.spec.Name)
		}
	}
	return out
}

// RegisteredSchema is the pair of schemas derived for one class.
type RegisteredSchema struct {
	Output *OutputSchema
	Input  *InputSchema
	core   *schemaCore
}

func newRegisteredSchema(core *schemaCore, unknown UnknownPolicy) *RegisteredSchema {
	return &RegisteredSchema{
		Output: &OutputSchema{schemaCore: core},
		Input:  &InputSchema{schemaCore: core, unknown: unknown},
		core:   core,
	}
}

// Name returns the class name.
func (rs *RegisteredSchema) Name() string { return rs.core.name }

// Fields returns the composed field specs.
func (rs *RegisteredSchema) Fields() []FieldSpec { return rs.core.Fields() }

// fieldForRead walks index from v, stopping at nil embedded pointers.
func fieldForRead(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

// fieldForWrite walks index from the addressable struct v, allocating nil
// embedded pointers on the way.
func fieldForWrite(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}
