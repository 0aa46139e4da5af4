package domainmap_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reoring/domainmap"
)

type Item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (Item) FieldDocs() string {
	return `
		:param name: Display name of the item
		this line is not a parameter line`
}

type Bag struct {
	Items []Item `json:"items"`
}

type Order struct {
	Item  Item           `json:"item"`
	Extra *Item          `json:"extra"`
	When  time.Time      `json:"when"`
	Day   domainmap.Date `json:"day"`
}

type Base struct {
	X int `json:"x"`
}

type Derived struct {
	Base
	Y string `json:"y"`
}

type PtrDerived struct {
	*Base
	Z bool `json:"z"`
}

// newItemRegistry returns a registry with Item registered, name required.
func newItemRegistry(t *testing.T, opts ...domainmap.Option) *domainmap.Registry {
	t.Helper()
	reg := domainmap.New(opts...)
	require.NoError(t, reg.Register(Item{Name: "widget", Count: 3}, "name"))
	return reg
}

func sampleOrder() Order {
	return Order{
		Item: Item{Name: "a", Count: 1},
		When: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		Day:  domainmap.Date{Year: 2024, Month: time.January, Day: 2},
	}
}

func newOrderRegistry(t *testing.T) *domainmap.Registry {
	t.Helper()
	reg := newItemRegistry(t)
	require.NoError(t, reg.Register(sampleOrder(), "item"))
	return reg
}
