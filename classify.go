package domainmap

import (
	"fmt"
	"reflect"
	"time"
)

// ComplexLookup reports whether a class name has been registered.
type ComplexLookup func(name string) bool

var (
	timeType = reflect.TypeOf(time.Time{})
	dateType = reflect.TypeOf(Date{})
)

// primitiveOf maps a Go type onto the closed primitive set. Pointers are
// followed once so *T is classified like T.
func primitiveOf(t reflect.Type) (Primitive, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t {
	case timeType:
		return PrimDateTime, true
	case dateType:
		return PrimDate, true
	}
	switch t.Kind() {
	case reflect.String:
		return PrimString, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return PrimInteger, true
	case reflect.Float32, reflect.Float64:
		return PrimFloat, true
	case reflect.Bool:
		return PrimBoolean, true
	}
	return 0, false
}

// Classify maps a field type to its Kind. Primitives are tried first, then
// registered classes; anything else is ErrUnknownType.
func Classify(t reflect.Type, complex ComplexLookup) (Kind, error) {
	if t == nil {
		return Kind{}, fmt.Errorf("%w: nil", ErrUnknownType)
	}
	if p, ok := primitiveOf(t); ok {
		return PrimitiveKind(p), nil
	}
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() == reflect.Struct && st.Name() != "" && complex != nil && complex(st.Name()) {
		return ComplexRef(st.Name()), nil
	}
	return Kind{}, fmt.Errorf("%w: %s", ErrUnknownType, t.String())
}

// ClassifyList classifies a slice value by its first element and returns the
// element Kind together with the element's concrete type. Every element must
// share that concrete type.
func ClassifyList(v reflect.Value, complex ComplexLookup) (Kind, reflect.Type, error) {
	if v.Kind() != reflect.Slice {
		return Kind{}, nil, fmt.Errorf("%w: %s is not a list", ErrUnknownType, v.Type())
	}
	if v.Len() == 0 {
		return Kind{}, nil, ErrEmptyList
	}
	first := elemType(v.Index(0))
	for i := 1; i < v.Len(); i++ {
		if et := elemType(v.Index(i)); et != first {
			return Kind{}, nil, fmt.Errorf("%w: element %d is %s, first element is %s",
				ErrHeterogeneousList, i, typeName(et), typeName(first))
		}
	}
	k, err := Classify(first, complex)
	if err != nil {
		return Kind{}, nil, err
	}
	return k, first, nil
}

// elemType returns the dynamic type behind interface elements.
func elemType(v reflect.Value) reflect.Type {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		return v.Elem().Type()
	}
	return v.Type()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
