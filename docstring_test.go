package domainmap

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestExtractFieldDescriptions(t *testing.T) {
	doc := `
		:param string: A test string
		:param int_: A test integer
		label : count : How many units
		this line has no colons
		:param bad: has: an extra colon
		a :  : no name`

	core, logs := observer.New(zapcore.DebugLevel)
	got := extractFieldDescriptions(doc, zap.New(core))

	assert.Equal(t, map[string]string{
		"string": "A test string",
		"int_":   "A test integer",
		"count":  "How many units",
	}, got)
	assert.Equal(t, 2, logs.FilterMessage("skipping doc line").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping doc line without field name").Len())
}

func TestExtractFieldDescriptions_Empty(t *testing.T) {
	got := ExtractFieldDescriptions("  \n\t ")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

type valueDocs struct{ A int }

func (valueDocs) FieldDocs() string { return ":param A: by value" }

type pointerDocs struct{ A int }

func (*pointerDocs) FieldDocs() string { return ":param A: by pointer" }

func TestDocsOf_MethodSets(t *testing.T) {
	assert.Equal(t, ":param A: by value", docsOf(reflect.ValueOf(valueDocs{})))
	assert.Equal(t, ":param A: by pointer", docsOf(reflect.ValueOf(pointerDocs{})))
	assert.Equal(t, "", docsOf(reflect.ValueOf(widget{})))
}
