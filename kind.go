package domainmap

// Primitive enumerates the closed set of scalar kinds a field may carry.
type Primitive uint8

const (
	PrimString   Primitive = iota + 1 // Go string kinds
	PrimInteger                       // signed and unsigned integer kinds
	PrimFloat                         // float32, float64
	PrimBoolean                       // bool
	PrimDate                          // Date
	PrimDateTime                      // time.Time
)

// String returns the wire name of the primitive.
func (p Primitive) String() string {
	switch p {
	case PrimString:
		return "string"
	case PrimInteger:
		return "integer"
	case PrimFloat:
		return "float"
	case PrimBoolean:
		return "boolean"
	case PrimDate:
		return "date"
	case PrimDateTime:
		return "datetime"
	}
	return "unknown"
}

// KindTag discriminates the Kind union.
type KindTag uint8

const (
	TagPrimitive KindTag = iota + 1 // Kind.Primitive is set
	TagComplex                      // Kind.Ref names a registered class
	TagList                         // element Kind lives in FieldSpec.Elem
)

// Kind is the classification of a field: a primitive, a reference to a
// registered class, or the list marker (element kind lives in FieldSpec.Elem).
type Kind struct {
	Tag       KindTag
	Primitive Primitive // set when Tag == TagPrimitive
	Ref       string    // class name when Tag == TagComplex
}

// PrimitiveKind returns the Kind for a primitive.
func PrimitiveKind(p Primitive) Kind { return Kind{Tag: TagPrimitive, Primitive: p} }

// ComplexRef returns the Kind referencing a registered class.
func ComplexRef(name string) Kind { return Kind{Tag: TagComplex, Ref: name} }

// ListKind returns the list marker Kind.
func ListKind() Kind { return Kind{Tag: TagList} }

// IsPrimitive reports whether k is one of the primitive kinds.
func (k Kind) IsPrimitive() bool { return k.Tag == TagPrimitive }

// IsComplex reports whether k references a registered class.
func (k Kind) IsComplex() bool { return k.Tag == TagComplex }

// IsList reports whether k is the list marker.
func (k Kind) IsList() bool { return k.Tag == TagList }

// String returns the primitive name, the referenced class name, or "list".
func (k Kind) String() string {
	switch k.Tag {
	case TagPrimitive:
		return k.Primitive.String()
	case TagComplex:
		return k.Ref
	case TagList:
		return "list"
	}
	return "invalid"
}

// FieldSpec is the derived description of one field. Elem is set iff the field
// is a list; every element of such a field shares that Kind.
type FieldSpec struct {
	Name        string
	Kind        Kind
	Elem        *Kind
	Required    bool
	Description string
}

// IsList reports whether the field holds a homogeneous list.
func (f FieldSpec) IsList() bool { return f.Elem != nil }

// ElemKind returns the element Kind of a list field.
func (f FieldSpec) ElemKind() (Kind, bool) {
	if f.Elem == nil {
		return Kind{}, false
	}
	return *f.Elem, true
}
