// Package structinfo computes and caches the field layout of domain struct
// types.
package structinfo

import (
	"reflect"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// TagName is the struct tag consulted before the json tag.
const TagName = "domainmap"

// Field is an exported, non-embedded struct field.
type Field struct {
	Name   string // external key
	GoName string
	Index  int
	Type   reflect.Type
}

// Embedded is an anonymous struct (or *struct) field, the candidate parent.
type Embedded struct {
	GoName  string
	Index   int
	Type    reflect.Type // the struct type, pointer removed
	Pointer bool
}

// Plan is the field layout of one struct type, in declaration order.
type Plan struct {
	Type     reflect.Type
	Fields   []Field
	Embedded []Embedded
}

// Field returns the field with the given external key.
func (p *Plan) Field(name string) (Field, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var plans = gocache.New(gocache.NoExpiration, 0)

// Of returns the Plan for struct type t, computing it on first use.
func Of(t reflect.Type) *Plan {
	key := cacheKey(t)
	if v, ok := plans.Get(key); ok {
		if p, ok := v.(*Plan); ok && p.Type == t {
			return p
		}
	}
	p := build(t)
	plans.Set(key, p, gocache.NoExpiration)
	return p
}

// Cached reports how many plans are currently cached.
func Cached() int { return plans.ItemCount() }

func cacheKey(t reflect.Type) string {
	if t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

func build(t reflect.Type) *Plan {
	p := &Plan{Type: t}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		key := ResolveKey(sf)
		if key == "-" {
			continue
		}
		if sf.Anonymous {
			if st, ptr, ok := structOf(sf.Type); ok {
				if ptr && !sf.IsExported() {
					// cannot be allocated through reflection
					continue
				}
				p.Embedded = append(p.Embedded, Embedded{GoName: sf.Name, Index: i, Type: st, Pointer: ptr})
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		p.Fields = append(p.Fields, Field{Name: key, GoName: sf.Name, Index: i, Type: sf.Type})
	}
	return p
}

func structOf(t reflect.Type) (reflect.Type, bool, bool) {
	if t.Kind() == reflect.Struct {
		return t, false, true
	}
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
		return t.Elem(), true, true
	}
	return nil, false, false
}

// ResolveKey resolves a struct field's external key.
// Priority: domainmap:"name=..." > json tag name > field name; "-" disables the field.
func ResolveKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get(TagName); gt != "" {
		if gt == "-" {
			return "-"
		}
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		name := jt
		if i := strings.IndexByte(jt, ','); i >= 0 {
			name = jt[:i]
		}
		if name != "" {
			return name
		}
	}
	return sf.Name
}
