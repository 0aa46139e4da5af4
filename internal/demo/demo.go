// Package demo holds the sample domain classes served by `domainmap serve`.
package demo

import (
	"github.com/reoring/domainmap"
)

// Item is a flat class covering the scalar primitives.
type Item struct {
	String string  `json:"string"`
	Int    int     `json:"int"`
	Float  float64 `json:"float"`
	Bool   bool    `json:"bool"`
}

func (Item) FieldDocs() string {
	return `
		:param string: A test string
		:param int: A test integer
		:param float: A test float
		:param bool: A test boolean`
}

// TaggedItem extends Item with primitive lists.
type TaggedItem struct {
	Item
	Tags   []string `json:"tags"`
	Counts []int    `json:"counts"`
}

func (TaggedItem) FieldDocs() string {
	return `
		:param tags: Free-form labels
		:param counts: Per-label counters`
}

// Composition nests both item classes.
type Composition struct {
	Item       *Item       `json:"item"`
	TaggedItem *TaggedItem `json:"tagged_item"`
}

// DerivedComposition adds a list of nested items to Composition.
type DerivedComposition struct {
	Composition
	Items []Item `json:"items"`
}

func sampleItem() Item {
	return Item{String: "hello world", Int: 12, Float: 0.15}
}

func sampleTagged() TaggedItem {
	return TaggedItem{Item: sampleItem(), Tags: []string{"a", "b"}, Counts: []int{1, 2}}
}

// Samples returns the instances used for registration, in registration order.
func Samples() []any {
	item, tagged := sampleItem(), sampleTagged()
	comp := Composition{Item: &item, TaggedItem: &tagged}
	return []any{
		item,
		tagged,
		comp,
		DerivedComposition{Composition: comp, Items: []Item{item}},
	}
}

// Register registers the sample classes with reg. Item requires "string".
func Register(reg *domainmap.Registry) error {
	for _, s := range Samples() {
		var required []string
		if _, ok := s.(Item); ok {
			required = []string{"string"}
		}
		if err := reg.Register(s, required...); err != nil {
			return err
		}
	}
	return nil
}
