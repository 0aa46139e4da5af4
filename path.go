package domainmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/domainmap/i18n"
)

// pathRef builds JSON Pointer paths for issues.
type pathRef struct {
	parts []string
}

func (p pathRef) Field(name string) pathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p pathRef) Index(i int) pathRef {
	return pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// Issue creates an Issue at p with a localized message. kv holds alternating
// parameter names and values.
func (p pathRef) Issue(code string, kv ...any) Issue {
	var params map[string]any
	var data map[string]string
	if len(kv) > 1 {
		params = make(map[string]any, len(kv)/2)
		data = make(map[string]string, len(kv)/2)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		k := fmt.Sprint(kv[i])
		params[k] = kv[i+1]
		data[k] = fmt.Sprint(kv[i+1])
	}
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, data), Params: params}
}
