package domainmap

import (
	"context"
	"fmt"
	"reflect"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/domainmap/codec"
)

// OutputSchema describes instances of a class for external consumption.
type OutputSchema struct {
	*schemaCore
}

// Model is the documentation view of an OutputSchema.
type Model struct {
	Name   string       `json:"name" yaml:"name"`
	Parent string       `json:"parent,omitempty" yaml:"parent,omitempty"`
	Fields []ModelField `json:"fields" yaml:"fields"`
}

// ModelField documents one field. Type is a primitive name, "object" or
// "list"; Items is the element type of lists; Ref names the referenced class.
type ModelField struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Items       string `json:"items,omitempty" yaml:"items,omitempty"`
	Ref         string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Required    bool   `json:"required" yaml:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Example     any    `json:"example,omitempty" yaml:"example,omitempty"`
}

// Model renders the documentation model.
func (s *OutputSchema) Model() Model {
	m := Model{Name: s.name, Parent: s.parent, Fields: make([]ModelField, 0, len(s.fields))}
	for _, b := range s.fields {
		mf := ModelField{
			Name:        b.spec.Name,
			Required:    b.spec.Required,
			Description: b.spec.Description,
			Example:     b.example,
		}
		k := b.spec.Kind
		if b.spec.IsList() {
			mf.Type = "list"
			k = *b.spec.Elem
			mf.Items = modelType(k)
		} else {
			mf.Type = modelType(k)
		}
		if k.IsComplex() {
			mf.Ref = k.Ref
		}
		m.Fields = append(m.Fields, mf)
	}
	return m
}

func modelType(k Kind) string {
	if k.IsComplex() {
		return "object"
	}
	return k.Primitive.String()
}

// MarshalJSON encodes the documentation model.
func (s *OutputSchema) MarshalJSON() ([]byte, error) { return gojson.Marshal(s.Model()) }

// MarshalYAML exposes the documentation model to yaml.v3.
func (s *OutputSchema) MarshalYAML() (any, error) { return s.Model(), nil }

// Example returns raw data built from the values seen at registration.
func (s *OutputSchema) Example() map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, b := range s.fields {
		out[b.spec.Name] = b.example
	}
	return out
}

// Serialize renders v, an instance of the class or a pointer to one, as raw
// structured data: dates as YYYY-MM-DD, datetimes as RFC3339, nested classes
// as maps.
func (s *OutputSchema) Serialize(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, &MappingError{Op: "serialize", Class: s.name, Err: fmt.Errorf("%w: nil pointer", ErrNotStruct)}
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != s.typ {
		return nil, &MappingError{Op: "serialize", Class: s.name, Err: fmt.Errorf("%w: got %T", ErrUnknownType, v)}
	}
	return s.encodeStruct(rv), nil
}

func (s *OutputSchema) encodeStruct(rv reflect.Value) map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, b := range s.fields {
		fv, ok := fieldForRead(rv, b.index)
		if !ok {
			out[b.spec.Name] = nil
			continue
		}
		out[b.spec.Name] = b.encode(fv)
	}
	return out
}

func (b *binding) encode(fv reflect.Value) any {
	fv, ok := indirect(fv)
	if !ok {
		return nil
	}
	if !b.spec.IsList() {
		return encodeValue(b.spec.Kind, b.ref, fv)
	}
	if fv.Kind() != reflect.Slice || fv.IsNil() {
		return nil
	}
	out := make([]any, fv.Len())
	for i := range out {
		out[i] = encodeValue(*b.spec.Elem, b.ref, fv.Index(i))
	}
	return out
}

func encodeValue(k Kind, ref *RegisteredSchema, v reflect.Value) any {
	v, ok := indirect(v)
	if !ok {
		return nil
	}
	if k.IsComplex() {
		if v.Type() != ref.core.typ {
			return nil
		}
		return ref.Output.encodeStruct(v)
	}
	return encodePrimitive(k.Primitive, v)
}

func encodePrimitive(p Primitive, v reflect.Value) any {
	switch {
	case p == PrimString && v.Kind() == reflect.String:
		return v.String()
	case p == PrimInteger && v.CanInt():
		return v.Int()
	case p == PrimInteger && v.CanUint():
		return v.Uint()
	case p == PrimFloat && v.CanFloat():
		return v.Float()
	case p == PrimBoolean && v.Kind() == reflect.Bool:
		return v.Bool()
	case p == PrimDate && v.Type() == dateType:
		return v.Interface().(Date).String()
	case p == PrimDateTime && v.Type() == timeType:
		s, _ := codec.TimeRFC3339().Encode(context.Background(), v.Interface().(time.Time))
		return s
	}
	if v.CanInterface() {
		return v.Interface()
	}
	return nil
}

// indirect follows interfaces and pointers, reporting false on nil.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}
