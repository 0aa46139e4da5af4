// Package codec converts between wire strings and time values for the date and
// datetime primitives.
package codec

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Codec performs bidirectional conversion between the wire representation A
// and the domain representation B.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// ErrInvalidFormat is wrapped by every Decode failure.
var ErrInvalidFormat = errors.New("codec: invalid format")

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and time.Time.
func TimeRFC3339() Codec[string, time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: datetime %q: %v", ErrInvalidFormat, a, err)
	}
	return t, nil
}

func (rfc3339Codec) Encode(ctx context.Context, b time.Time) (string, error) {
	return formatRFC3339Canonical(b), nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
