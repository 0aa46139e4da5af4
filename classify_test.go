package domainmap

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct{ Name string }

func registeredOnly(names ...string) ComplexLookup {
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestClassify_Primitives(t *testing.T) {
	type color string
	cases := []struct {
		v    any
		want Primitive
	}{
		{"s", PrimString},
		{color("red"), PrimString},
		{1, PrimInteger},
		{int8(1), PrimInteger},
		{uint64(1), PrimInteger},
		{1.5, PrimFloat},
		{float32(1), PrimFloat},
		{true, PrimBoolean},
		{Date{Year: 2024, Month: time.January, Day: 1}, PrimDate},
		{time.Now(), PrimDateTime},
		{new(string), PrimString},
		{new(time.Time), PrimDateTime},
	}
	for _, c := range cases {
		k, err := Classify(reflect.TypeOf(c.v), nil)
		require.NoError(t, err, "%T", c.v)
		assert.Equal(t, PrimitiveKind(c.want), k, "%T", c.v)
	}
}

func TestClassify_PrimitiveBeforeComplex(t *testing.T) {
	// a registered class named like a primitive type does not shadow it
	k, err := Classify(reflect.TypeOf(time.Time{}), registeredOnly("Time"))
	require.NoError(t, err)
	assert.Equal(t, PrimitiveKind(PrimDateTime), k)
}

func TestClassify_ComplexRef(t *testing.T) {
	lookup := registeredOnly("widget")

	k, err := Classify(reflect.TypeOf(widget{}), lookup)
	require.NoError(t, err)
	assert.Equal(t, ComplexRef("widget"), k)

	k, err = Classify(reflect.TypeOf(&widget{}), lookup)
	require.NoError(t, err)
	assert.True(t, k.IsComplex())
	assert.Equal(t, "widget", k.String())
}

func TestClassify_Unknown(t *testing.T) {
	for _, v := range []any{map[string]int{}, widget{}, []string{}, struct{ A int }{}, complex(1, 2)} {
		_, err := Classify(reflect.TypeOf(v), registeredOnly())
		assert.ErrorIs(t, err, ErrUnknownType, "%T", v)
	}

	_, err := Classify(nil, nil)
	require.ErrorIs(t, err, ErrUnknownType)
	assert.Contains(t, err.Error(), "nil")
}

func TestClassifyList_Empty(t *testing.T) {
	_, _, err := ClassifyList(reflect.ValueOf([]string{}), nil)
	assert.ErrorIs(t, err, ErrEmptyList)

	var nilSlice []int
	_, _, err = ClassifyList(reflect.ValueOf(nilSlice), nil)
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestClassifyList_Heterogeneous(t *testing.T) {
	_, _, err := ClassifyList(reflect.ValueOf([]any{1, "a"}), nil)
	assert.ErrorIs(t, err, ErrHeterogeneousList)

	// exact type, not kind, must match
	_, _, err = ClassifyList(reflect.ValueOf([]any{1, int64(2)}), nil)
	assert.ErrorIs(t, err, ErrHeterogeneousList)

	_, _, err = ClassifyList(reflect.ValueOf([]any{"a", nil}), nil)
	assert.ErrorIs(t, err, ErrHeterogeneousList)
}

func TestClassifyList_Homogeneous(t *testing.T) {
	k, et, err := ClassifyList(reflect.ValueOf([]int{1, 2}), nil)
	require.NoError(t, err)
	assert.Equal(t, PrimitiveKind(PrimInteger), k)
	assert.Equal(t, reflect.TypeOf(0), et)

	k, et, err = ClassifyList(reflect.ValueOf([]any{"a", "b"}), nil)
	require.NoError(t, err)
	assert.Equal(t, PrimitiveKind(PrimString), k)
	assert.Equal(t, reflect.TypeOf(""), et)

	k, et, err = ClassifyList(reflect.ValueOf([]*widget{{Name: "w"}}), registeredOnly("widget"))
	require.NoError(t, err)
	assert.Equal(t, ComplexRef("widget"), k)
	assert.Equal(t, reflect.TypeOf(&widget{}), et)
}

func TestClassifyList_ElementFailures(t *testing.T) {
	_, _, err := ClassifyList(reflect.ValueOf([]widget{{}}), registeredOnly())
	assert.ErrorIs(t, err, ErrUnknownType)

	_, _, err = ClassifyList(reflect.ValueOf([][]int{{1}}), nil)
	assert.ErrorIs(t, err, ErrUnknownType)

	_, _, err = ClassifyList(reflect.ValueOf([]any{nil}), nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}
