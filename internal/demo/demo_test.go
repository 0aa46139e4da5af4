package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/domainmap"
)

func TestRegister(t *testing.T) {
	reg := domainmap.New()
	require.NoError(t, Register(reg))
	assert.Equal(t, []string{"Composition", "DerivedComposition", "Item", "TaggedItem"}, reg.Names())

	tagged, err := reg.LookupOutputSchema("TaggedItem")
	require.NoError(t, err)
	assert.Equal(t, "Item", tagged.Parent())
	// TaggedItem is registered without required names
	str, _ := tagged.Field("string")
	assert.False(t, str.Required)
	item, err := reg.LookupInputSchema("Item")
	require.NoError(t, err)
	assert.Equal(t, []string{"string"}, item.Required())
	assert.Equal(t, "A test string", str.Description)
	tags, _ := tagged.Field("tags")
	assert.Equal(t, domainmap.PrimitiveKind(domainmap.PrimString), *tags.Elem)

	derived, err := reg.LookupOutputSchema("DerivedComposition")
	require.NoError(t, err)
	items, _ := derived.Field("items")
	assert.Equal(t, domainmap.ComplexRef("Item"), *items.Elem)
}

func TestParseDerivedComposition(t *testing.T) {
	reg := domainmap.New()
	require.NoError(t, Register(reg))

	got, err := domainmap.Parse[DerivedComposition](context.Background(), reg, map[string]any{
		"item": map[string]any{"string": "world", "int": 1, "float": 2.45, "bool": true},
		"tagged_item": map[string]any{
			"string": "hello", "tags": []any{"x"}, "counts": []any{3},
		},
		"items": []any{map[string]any{"string": "first"}},
	})
	require.NoError(t, err)
	require.NotNil(t, got.Item)
	assert.Equal(t, Item{String: "world", Int: 1, Float: 2.45, Bool: true}, *got.Item)
	require.NotNil(t, got.TaggedItem)
	assert.Equal(t, []string{"x"}, got.TaggedItem.Tags)
	assert.Equal(t, []int{3}, got.TaggedItem.Counts)
	assert.Equal(t, []Item{{String: "first"}}, got.Items)

	_, err = domainmap.Parse[DerivedComposition](context.Background(), reg, map[string]any{
		"items": []any{map[string]any{"int": 1}},
	})
	ve, ok := domainmap.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"/items/0/string"}, ve.Paths())
}
