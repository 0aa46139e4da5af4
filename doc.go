// Package domainmap derives schemas from plain domain objects.
//
// A Registry inspects a live struct value, classifies every exported field
// (primitive, list, or a previously registered struct) and stores two views of
// the result:
//
// - OutputSchema describes instances (example values, descriptions) and
// serializes them into raw structured data.
// - InputSchema validates raw structured data and reconstructs a new instance
// of the domain type.
//
// Single inheritance is expressed through one embedded struct: the parent must
// be registered first and its fields are composed ahead of the child's own.
// Field descriptions come from the optional Documented interface.
//
// Typical usage:
//
//	reg := domainmap.New(domainmap.WithLogger(logger))
//	if err := reg.Register(Item{Name: "widget", Count: 3}, "name"); err != nil {
//		return err
//	}
//	out, _ := reg.LookupOutputSchema("Item")
//	item, err := domainmap.Parse[Item](ctx, reg, map[string]any{"name": "widget"})
//
// Registration is expected to complete during start-up. Lookups and parsing
// are safe for concurrent use afterwards.
package domainmap
