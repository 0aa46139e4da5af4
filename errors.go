package domainmap

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Issue codes
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidFormat = "invalid_format"
	CodeOverflow      = "overflow"
	CodeParseError    = "parse_error"
)

// Issue represents a single field-level validation failure.
type Issue struct {
	Path    string `json:"path"` // JSON Pointer (for example: /items/2/count).
	Code    string `json:"code"` // One of the codes listed above.
	Message string `json:"message"`
	// Params carries structured parameters (e.g., {"expected": "integer"}).
	Params map[string]any `json:"params,omitempty"`
}

// Issues is a collection of validation failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ValidationError reports raw input that does not satisfy a class's
// InputSchema. No instance is built when it is returned.
type ValidationError struct {
	Class  string
	Issues Issues
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("domainmap: validation of %s failed: %s", e.Class, e.Issues.Error())
}

func (e *ValidationError) Unwrap() error { return e.Issues }

// Fields groups issue messages by path, one entry per offending field.
func (e *ValidationError) Fields() map[string][]string {
	out := make(map[string][]string, len(e.Issues))
	for _, it := range e.Issues {
		out[it.Path] = append(out[it.Path], it.Message)
	}
	return out
}

// Paths returns the offending paths in sorted order.
func (e *ValidationError) Paths() []string {
	seen := make(map[string]struct{}, len(e.Issues))
	out := make([]string, 0, len(e.Issues))
	for _, it := range e.Issues {
		if _, ok := seen[it.Path]; ok {
			continue
		}
		seen[it.Path] = struct{}{}
		out = append(out, it.Path)
	}
	sort.Strings(out)
	return out
}

// AsValidationError extracts a *ValidationError using errors.As.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Mapping failures. They are always wrapped in a *MappingError; match them
// with errors.Is.
var (
	ErrEmptyList           = errors.New("empty list: element type cannot be inferred")
	ErrHeterogeneousList   = errors.New("list elements must share one type")
	ErrUnknownType         = errors.New("type is neither a primitive nor a registered class")
	ErrMultipleInheritance = errors.New("multiple inheritance not supported")
	ErrUnregisteredParent  = errors.New("parent class not registered")
	ErrSchemaNotFound      = errors.New("schema not found")
	ErrFieldCollision      = errors.New("field collides with an inherited field")
	ErrNotStruct           = errors.New("domain object must be a named struct")
)

// MappingError reports a failed registration, lookup or parse request.
type MappingError struct {
	Op    string // register, lookup, parse
	Class string
	Field string // empty when the failure is not tied to one field
	Err   error
}

func (e *MappingError) Error() string {
	b := &strings.Builder{}
	b.WriteString("domainmap: ")
	b.WriteString(e.Op)
	if e.Class != "" {
		b.WriteString(" ")
		b.WriteString(e.Class)
		if e.Field != "" {
			b.WriteString(".")
			b.WriteString(e.Field)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *MappingError) Unwrap() error { return e.Err }
