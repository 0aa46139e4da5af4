package codec

import (
	"context"
	"fmt"
	"time"
)

const isoDate = "2006-01-02"

// DateISO8601 returns a Codec between YYYY-MM-DD strings and time.Time values
// at midnight UTC. Encode drops the time of day.
func DateISO8601() Codec[string, time.Time] { return dateCodec{} }

type dateCodec struct{}

func (dateCodec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := time.Parse(isoDate, a)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrInvalidFormat, a, err)
	}
	return t, nil
}

func (dateCodec) Encode(ctx context.Context, b time.Time) (string, error) {
	return b.Format(isoDate), nil
}
