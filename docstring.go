package domainmap

import (
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// Documented is implemented by domain types that describe their fields. The
// text holds one line per field in the form
//
//	label : name : description
//
// so the conventional ":param name: description" lines are accepted as well.
type Documented interface {
	FieldDocs() string
}

// ExtractFieldDescriptions parses field documentation into a map from field
// name to description. Malformed lines are skipped.
func ExtractFieldDescriptions(doc string) map[string]string {
	return extractFieldDescriptions(doc, zap.NewNop())
}

func extractFieldDescriptions(doc string, log *zap.Logger) map[string]string {
	out := map[string]string{}
	doc = strings.TrimSpace(strings.ReplaceAll(doc, "\t", ""))
	if doc == "" {
		return out
	}
	for _, line := range strings.Split(doc, "\n") {
		parts := strings.Split(line, ":")
		if len(parts) != 3 {
			log.Debug("skipping doc line", zap.Int("segments", len(parts)), zap.String("line", line))
			continue
		}
		label := strings.Fields(parts[1])
		if len(label) == 0 {
			log.Debug("skipping doc line without field name", zap.String("line", line))
			continue
		}
		key := label[len(label)-1]
		out[key] = strings.TrimSpace(parts[2])
	}
	return out
}

// docsOf returns the field documentation of the value held by rv, checking
// both the value and pointer method sets.
func docsOf(rv reflect.Value) string {
	if d, ok := rv.Interface().(Documented); ok {
		return d.FieldDocs()
	}
	pv := reflect.New(rv.Type())
	pv.Elem().Set(rv)
	if d, ok := pv.Interface().(Documented); ok {
		return d.FieldDocs()
	}
	return ""
}
