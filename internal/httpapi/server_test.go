package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reoring/domainmap"
	"github.com/reoring/domainmap/internal/demo"
)

func newTestServer(t *testing.T) (*httptest.Server, *observer.ObservedLogs) {
	t.Helper()
	reg := domainmap.New()
	require.NoError(t, demo.Register(reg))
	core, logs := observer.New(zapcore.DebugLevel)
	srv := httptest.NewServer(New(reg, zap.New(core)).Handler())
	t.Cleanup(srv.Close)
	return srv, logs
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, gojson.NewDecoder(resp.Body).Decode(v))
}

func TestListModels(t *testing.T) {
	srv, logs := newTestServer(t)

	resp, err := http.Get(srv.URL + "/models")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var models []domainmap.Model
	decode(t, resp, &models)
	require.Len(t, models, 4)
	assert.Equal(t, "Composition", models[0].Name)
	assert.Equal(t, 1, logs.FilterMessage("request").Len())
}

func TestGetModel(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/models/TaggedItem")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var m domainmap.Model
	decode(t, resp, &m)
	assert.Equal(t, "Item", m.Parent)
	assert.Equal(t, "string", m.Fields[0].Name)
	assert.Equal(t, "A test string", m.Fields[0].Description)

	resp, err = http.Get(srv.URL + "/models/TaggedItem?format=yaml")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))

	resp, err = http.Get(srv.URL + "/models/Nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestGetExample(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/models/Item/example")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ex map[string]any
	decode(t, resp, &ex)
	assert.Equal(t, "hello world", ex["string"])
	assert.Equal(t, float64(12), ex["int"])
}

func TestParse(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/models/Item/parse", "application/json",
		strings.NewReader(`{"string":"world","int":1,"float":2.5,"bool":true,"extra":1}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	decode(t, resp, &got)
	assert.Equal(t, map[string]any{"string": "world", "int": float64(1), "float": 2.5, "bool": true}, got)
}

func TestParse_Invalid(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/models/Item/parse", "application/json", strings.NewReader(`{"int":"x"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Class  string              `json:"class"`
		Issues []domainmap.Issue   `json:"issues"`
		Fields map[string][]string `json:"fields"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "Item", body.Class)
	assert.Len(t, body.Issues, 2)
	assert.Contains(t, body.Fields, "/string")
	assert.Contains(t, body.Fields, "/int")

	resp, err = http.Post(srv.URL+"/models/Item/parse", "application/json", strings.NewReader(`{not json`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/models/Nope/parse", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
