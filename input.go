package domainmap

import (
	"context"
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/reoring/domainmap/codec"
)

// InputSchema validates raw structured data and reconstructs instances of its
// class.
type InputSchema struct {
	*schemaCore
	unknown UnknownPolicy
}

// Validate checks raw against the field rules without returning an instance.
func (s *InputSchema) Validate(ctx context.Context, raw map[string]any) error {
	if _, iss := s.validate(ctx, raw, pathRef{}); len(iss) > 0 {
		return &ValidationError{Class: s.name, Issues: iss}
	}
	return nil
}

// Load validates raw and, on success, returns a pointer to a new instance.
func (s *InputSchema) Load(ctx context.Context, raw map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vals, iss := s.validate(ctx, raw, pathRef{})
	if len(iss) > 0 {
		return nil, &ValidationError{Class: s.name, Issues: iss}
	}
	return s.construct(vals).Interface(), nil
}

// validate decodes every field of raw. The returned values are aligned with
// s.fields; an invalid Value marks an absent optional field.
func (s *InputSchema) validate(ctx context.Context, raw map[string]any, path pathRef) ([]reflect.Value, Issues) {
	vals := make([]reflect.Value, len(s.fields))
	var iss Issues
	for i, b := range s.fields {
		fp := path.Field(b.spec.Name)
		rv, present := raw[b.spec.Name]
		if !present || rv == nil {
			if b.spec.Required {
				iss = AppendIssues(iss, fp.Issue(CodeRequired))
			}
			continue
		}
		v, fi := b.decode(ctx, rv, fp)
		if len(fi) > 0 {
			iss = AppendIssues(iss, fi...)
			continue
		}
		vals[i] = v
	}
	if s.unknown == UnknownStrict {
		keys := make([]string, 0, len(raw))
		for k := range raw {
			if _, ok := s.byName[k]; !ok {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			iss = AppendIssues(iss, path.Field(k).Issue(CodeUnknownKey))
		}
	}
	return vals, iss
}

// construct is the reconstruction rule: it allocates a new instance and
// assigns the validated values. It returns a pointer to the instance.
func (s *InputSchema) construct(vals []reflect.Value) reflect.Value {
	pv := reflect.New(s.typ)
	for i, b := range s.fields {
		if !vals[i].IsValid() {
			continue
		}
		fieldForWrite(pv.Elem(), b.index).Set(vals[i])
	}
	return pv
}

func (b *binding) decode(ctx context.Context, raw any, path pathRef) (reflect.Value, Issues) {
	if !b.spec.IsList() {
		return decodeValue(ctx, b.spec.Kind, b.ref, b.target, raw, path)
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice {
		return reflect.Value{}, Issues{path.Issue(CodeInvalidType, "expected", "list")}
	}
	out := reflect.MakeSlice(b.listType, rv.Len(), rv.Len())
	var iss Issues
	for i := 0; i < rv.Len(); i++ {
		ev, ei := decodeValue(ctx, *b.spec.Elem, b.ref, b.target, rv.Index(i).Interface(), path.Index(i))
		if len(ei) > 0 {
			iss = AppendIssues(iss, ei...)
			continue
		}
		out.Index(i).Set(ev)
	}
	if len(iss) > 0 {
		return reflect.Value{}, iss
	}
	return out, nil
}

func decodeValue(ctx context.Context, k Kind, ref *RegisteredSchema, target reflect.Type, raw any, path pathRef) (reflect.Value, Issues) {
	if raw == nil {
		return reflect.Value{}, Issues{path.Issue(CodeInvalidType, "expected", k.String())}
	}
	if !k.IsComplex() {
		return decodePrimitive(ctx, k.Primitive, target, raw, path)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return reflect.Value{}, Issues{path.Issue(CodeInvalidType, "expected", "object")}
	}
	vals, iss := ref.Input.validate(ctx, m, path)
	if len(iss) > 0 {
		return reflect.Value{}, iss
	}
	pv := ref.Input.construct(vals)
	if target.Kind() == reflect.Pointer {
		return pv, nil
	}
	return pv.Elem(), nil
}

func decodePrimitive(ctx context.Context, p Primitive, target reflect.Type, raw any, path pathRef) (reflect.Value, Issues) {
	base, ptr := target, false
	if base.Kind() == reflect.Pointer {
		base, ptr = base.Elem(), true
	}
	invalid := func() (reflect.Value, Issues) {
		return reflect.Value{}, Issues{path.Issue(CodeInvalidType, "expected", p.String())}
	}
	out := reflect.New(base).Elem()
	switch p {
	case PrimString:
		s, ok := raw.(string)
		if !ok {
			return invalid()
		}
		out.SetString(s)
	case PrimBoolean:
		bv, ok := raw.(bool)
		if !ok {
			return invalid()
		}
		out.SetBool(bv)
	case PrimInteger:
		n, ok, fits := integerOf(raw)
		if !ok {
			return invalid()
		}
		if !fits || !setInteger(out, n) {
			return reflect.Value{}, Issues{path.Issue(CodeOverflow, "type", base.String())}
		}
	case PrimFloat:
		f, ok := floatOf(raw)
		if !ok {
			return invalid()
		}
		if out.OverflowFloat(f) {
			return reflect.Value{}, Issues{path.Issue(CodeOverflow, "type", base.String())}
		}
		out.SetFloat(f)
	case PrimDate:
		var d Date
		switch v := raw.(type) {
		case string:
			t, err := codec.DateISO8601().Decode(ctx, v)
			if err != nil {
				return reflect.Value{}, Issues{path.Issue(CodeInvalidFormat, "format", "date")}
			}
			d = DateOf(t)
		case Date:
			d = v
		case time.Time:
			d = DateOf(v)
		default:
			return invalid()
		}
		out.Set(reflect.ValueOf(d))
	case PrimDateTime:
		var t time.Time
		switch v := raw.(type) {
		case string:
			pt, err := codec.TimeRFC3339().Decode(ctx, v)
			if err != nil {
				return reflect.Value{}, Issues{path.Issue(CodeInvalidFormat, "format", "datetime")}
			}
			t = pt
		case time.Time:
			t = v
		default:
			return invalid()
		}
		out.Set(reflect.ValueOf(t))
	default:
		return invalid()
	}
	if ptr {
		pv := reflect.New(base)
		pv.Elem().Set(out)
		return pv, nil
	}
	return out, nil
}

// setInteger stores n into the integer value v, reporting false when n does
// not fit.
func setInteger(v reflect.Value, n int64) bool {
	if v.CanInt() {
		if v.OverflowInt(n) {
			return false
		}
		v.SetInt(n)
		return true
	}
	if n < 0 || v.OverflowUint(uint64(n)) {
		return false
	}
	v.SetUint(uint64(n))
	return true
}

// integerOf returns raw as int64. ok is false for non-numeric or non-integral
// values; fits is false when an integral value exceeds the int64 range.
func integerOf(raw any) (n int64, ok, fits bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true, true
	case int8:
		return int64(v), true, true
	case int16:
		return int64(v), true, true
	case int32:
		return int64(v), true, true
	case int64:
		return v, true, true
	case uint:
		return int64(v), true, uint64(v) <= math.MaxInt64
	case uint8:
		return int64(v), true, true
	case uint16:
		return int64(v), true, true
	case uint32:
		return int64(v), true, true
	case uint64:
		return int64(v), true, v <= math.MaxInt64
	case float32:
		return integerOf(float64(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, false, false
		}
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, true, false
		}
		return int64(v), true, true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false, false
		}
		return integerOf(f)
	}
	return 0, false, false
}

func floatOf(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	if n, ok, fits := integerOf(raw); ok && fits {
		return float64(n), true
	}
	return 0, false
}
