package domainmap

import (
	"bytes"
	"context"
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a JSON object and parses it as an instance of name.
// Numbers are kept as json.Number so integer fields see exact values.
// Malformed input yields a *ValidationError with a parse_error issue at "/".
func (r *Registry) ParseJSON(ctx context.Context, name string, data []byte) (any, error) {
	in, err := r.LookupInputSchema(name)
	if err != nil {
		return nil, err
	}
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, parseFailure(name, err)
	}
	if raw == nil {
		return nil, parseFailure(name, fmt.Errorf("expected a JSON object"))
	}
	return in.Load(ctx, raw)
}

// ParseYAML decodes a YAML mapping and parses it as an instance of name.
func (r *Registry) ParseYAML(ctx context.Context, name string, data []byte) (any, error) {
	in, err := r.LookupInputSchema(name)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, parseFailure(name, err)
	}
	if raw == nil {
		return nil, parseFailure(name, fmt.Errorf("expected a YAML mapping"))
	}
	return in.Load(ctx, raw)
}

// EncodeJSON serializes v with the OutputSchema of name.
func (r *Registry) EncodeJSON(name string, v any) ([]byte, error) {
	out, err := r.LookupOutputSchema(name)
	if err != nil {
		return nil, err
	}
	m, err := out.Serialize(v)
	if err != nil {
		return nil, err
	}
	return gojson.Marshal(m)
}

// ModelsYAML renders every documentation model as one YAML document.
func (r *Registry) ModelsYAML() ([]byte, error) {
	return yaml.Marshal(r.Models())
}

func parseFailure(name string, err error) error {
	return &ValidationError{Class: name, Issues: Issues{pathRef{}.Issue(CodeParseError, "cause", err.Error())}}
}
