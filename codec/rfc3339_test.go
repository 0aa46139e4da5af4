package codec

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTimeRFC3339_Codec_Basic(t *testing.T) {
	c := TimeRFC3339()
	ctx := context.Background()

	in := "2025-01-01T00:00:00Z"
	got, err := c.Decode(ctx, in)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}

	out, err := c.Encode(ctx, got)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestTimeRFC3339_EncodeNormalizesToUTC(t *testing.T) {
	c := TimeRFC3339()
	loc := time.FixedZone("JST", 9*60*60)
	out, err := c.Encode(context.Background(), time.Date(2025, 1, 1, 9, 0, 0, 500, loc))
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != "2025-01-01T00:00:00.0000005Z" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestTimeRFC3339_DecodeInvalid(t *testing.T) {
	_, err := TimeRFC3339().Decode(context.Background(), "yesterday")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestDateISO8601_Roundtrip(t *testing.T) {
	c := DateISO8601()
	ctx := context.Background()
	got, err := c.Decode(ctx, "2024-02-29")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !got.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", got)
	}
	s, err := c.Encode(ctx, got.Add(13*time.Hour))
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if s != "2024-02-29" {
		t.Fatalf("unexpected output: %q", s)
	}
}

func TestDateISO8601_DecodeInvalid(t *testing.T) {
	for _, in := range []string{"2023-02-29", "2024/01/01", "2024-01-01T00:00:00Z", ""} {
		if _, err := DateISO8601().Decode(context.Background(), in); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("%q: expected ErrInvalidFormat, got %v", in, err)
		}
	}
}
