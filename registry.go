package domainmap

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/reoring/domainmap/internal/structinfo"
)

// Registry maps class names to their derived schemas. Registration is meant to
// run during start-up; lookups and parsing may run concurrently afterwards.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*RegisteredSchema
	log     *zap.Logger
	unknown UnknownPolicy
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithUnknownPolicy sets how ParseInstance treats keys that match no field.
func WithUnknownPolicy(p UnknownPolicy) Option {
	return func(r *Registry) { r.unknown = p }
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		schemas: make(map[string]*RegisteredSchema),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register derives and stores the schemas of obj's class. obj must be a named
// struct or a pointer to one; its field values drive classification, so list
// fields must be non-empty. required names the fields that parsing must find.
// Registration is atomic: on error nothing is stored and an earlier
// registration of the same class is kept.
func (r *Registry) Register(obj any, required ...string) error {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return &MappingError{Op: "register", Err: fmt.Errorf("%w: nil pointer", ErrNotStruct)}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || rv.Type().Name() == "" {
		return &MappingError{Op: "register", Err: fmt.Errorf("%w: got %T", ErrNotStruct, obj)}
	}
	t := rv.Type()
	name := t.Name()
	log := r.log.With(zap.String("class", name))

	plan := structinfo.Of(t)
	docs := extractFieldDescriptions(docsOf(rv), log)
	req := make(map[string]bool, len(required))
	for _, n := range required {
		req[n] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	own := make([]*binding, 0, len(plan.Fields))
	for _, f := range plan.Fields {
		b, err := r.bindField(rv.Field(f.Index), f, docs, req)
		if err != nil {
			return &MappingError{Op: "register", Class: name, Field: f.Name, Err: err}
		}
		own = append(own, b)
	}

	fields, parent, err := r.compose(plan, own, req)
	if err != nil {
		return &MappingError{Op: "register", Class: name, Err: err}
	}

	composed := make(map[string]bool, len(fields))
	for _, b := range fields {
		composed[b.spec.Name] = true
	}
	for _, n := range required {
		if !composed[n] {
			log.Warn("required name matches no field", zap.String("field", n))
		}
	}

	r.schemas[name] = newRegisteredSchema(newSchemaCore(name, parent, t, fields), r.unknown)
	log.Info("registered domain class", zap.String("parent", parent), zap.Int("fields", len(fields)))
	return nil
}

// bindField classifies one attribute. Callers hold r.mu.
func (r *Registry) bindField(fv reflect.Value, f structinfo.Field, docs map[string]string, req map[string]bool) (*binding, error) {
	b := &binding{
		index:     []int{f.Index},
		container: f.Type,
		spec: FieldSpec{
			Name:        f.Name,
			Required:    req[f.Name],
			Description: describe(docs, f),
		},
	}
	v := fv
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, fmt.Errorf("%w: nil", ErrUnknownType)
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Slice {
		k, et, err := ClassifyList(v, r.registeredLocked)
		if err != nil {
			return nil, err
		}
		b.spec.Kind = ListKind()
		b.spec.Elem = &k
		b.target = et
		b.listType = v.Type()
		if k.IsComplex() {
			if b.ref, err = r.refLocked(k, et); err != nil {
				return nil, err
			}
		}
		b.example = b.encode(fv)
		return b, nil
	}
	k, err := Classify(v.Type(), r.registeredLocked)
	if err != nil {
		return nil, err
	}
	b.spec.Kind = k
	b.target = v.Type()
	if k.IsComplex() {
		if b.ref, err = r.refLocked(k, b.target); err != nil {
			return nil, err
		}
	}
	b.example = b.encode(fv)
	return b, nil
}

// refLocked returns the schema referenced by k, which must have been
// registered for t (or the struct t points to). Callers hold r.mu.
func (r *Registry) refLocked(k Kind, t reflect.Type) (*RegisteredSchema, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	rs, ok := r.schemas[k.Ref]
	if !ok || rs.core.typ != t {
		return nil, fmt.Errorf("%w: %s is not the registered class %s", ErrUnknownType, t, k.Ref)
	}
	return rs, nil
}

// compose resolves the parent of plan and returns the full field list. The
// child's required names decide required-ness for inherited fields too.
// Callers hold r.mu.
func (r *Registry) compose(plan *structinfo.Plan, own []*binding, req map[string]bool) ([]*binding, string, error) {
	switch len(plan.Embedded) {
	case 0:
		return own, "", nil
	case 1:
	default:
		names := make([]string, len(plan.Embedded))
		for i, e := range plan.Embedded {
			names[i] = e.Type.Name()
		}
		return nil, "", fmt.Errorf("%w: %v", ErrMultipleInheritance, names)
	}
	emb := plan.Embedded[0]
	parentName := emb.Type.Name()
	parent, ok := r.schemas[parentName]
	if !ok || parent.core.typ != emb.Type {
		return nil, "", fmt.Errorf("%w: %s", ErrUnregisteredParent, emb.Type)
	}
	fields := make([]*binding, 0, len(parent.core.fields)+len(own))
	for _, pb := range parent.core.fields {
		ib := pb.inherit(emb.Index)
		ib.spec.Required = req[ib.spec.Name]
		fields = append(fields, ib)
	}
	for _, b := range own {
		if _, dup := parent.core.byName[b.spec.Name]; dup {
			return nil, "", fmt.Errorf("%w: %s (from %s)", ErrFieldCollision, b.spec.Name, parentName)
		}
		fields = append(fields, b)
	}
	return fields, parentName, nil
}

func describe(docs map[string]string, f structinfo.Field) string {
	if d, ok := docs[f.Name]; ok {
		return d
	}
	return docs[f.GoName]
}

func (r *Registry) registeredLocked(name string) bool {
	_, ok := r.schemas[name]
	return ok
}

// IsRegistered reports whether name has been registered.
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.registeredLocked(name)
}

// Lookup returns the schema pair registered under name.
func (r *Registry) Lookup(name string) (*RegisteredSchema, error) {
	r.mu.RLock()
	rs, ok := r.schemas[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &MappingError{Op: "lookup", Class: name, Err: ErrSchemaNotFound}
	}
	return rs, nil
}

// LookupOutputSchema returns the OutputSchema registered under name.
func (r *Registry) LookupOutputSchema(name string) (*OutputSchema, error) {
	rs, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return rs.Output, nil
}

// LookupInputSchema returns the InputSchema registered under name.
func (r *Registry) LookupInputSchema(name string) (*InputSchema, error) {
	rs, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return rs.Input, nil
}

// ParseInstance validates raw against the InputSchema of name. On success it
// returns a pointer to a new instance; on invalid input a *ValidationError.
func (r *Registry) ParseInstance(ctx context.Context, name string, raw map[string]any) (any, error) {
	in, err := r.LookupInputSchema(name)
	if err != nil {
		return nil, err
	}
	return in.Load(ctx, raw)
}

// Names returns the registered class names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.schemas))
	for n := range r.schemas {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Models returns the documentation models of all classes sorted by name.
func (r *Registry) Models() []Model {
	names := r.Names()
	out := make([]Model, 0, len(names))
	for _, n := range names {
		if s, err := r.LookupOutputSchema(n); err == nil {
			out = append(out, s.Model())
		}
	}
	return out
}

// ClassName returns the class name of v, a struct or pointer to one.
func ClassName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

func classOf[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// OutputSchemaOf returns the OutputSchema registered for T.
func OutputSchemaOf[T any](r *Registry) (*OutputSchema, error) {
	return r.LookupOutputSchema(classOf[T]())
}

// InputSchemaOf returns the InputSchema registered for T.
func InputSchemaOf[T any](r *Registry) (*InputSchema, error) {
	return r.LookupInputSchema(classOf[T]())
}

// Parse validates raw against the InputSchema registered for T and returns the
// new instance.
func Parse[T any](ctx context.Context, r *Registry, raw map[string]any) (*T, error) {
	v, err := r.ParseInstance(ctx, classOf[T](), raw)
	if err != nil {
		return nil, err
	}
	p, ok := v.(*T)
	if !ok {
		return nil, &MappingError{Op: "parse", Class: classOf[T](), Err: fmt.Errorf("%w: registered as %T", ErrUnknownType, v)}
	}
	return p, nil
}
