// Package httpapi exposes a Registry over HTTP: model documents, example
// payloads and instance parsing.
package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	gojson "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/reoring/domainmap"
)

// MaxBodyBytes bounds the request body accepted by the parse endpoint.
const MaxBodyBytes = 1 << 20

// Server serves the schemas of one Registry.
type Server struct {
	reg *domainmap.Registry
	log *zap.Logger
}

// New returns a Server for reg. A nil logger disables request logging.
func New(reg *domainmap.Registry, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{reg: reg, log: log}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/models", func(r chi.Router) {
		r.Get("/", s.listModels)
		r.Get("/{name}", s.getModel)
		r.Get("/{name}/example", s.getExample)
		r.Post("/{name}/parse", s.parse)
	})
	return r
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, s.reg.Models())
}

func (s *Server) getModel(w http.ResponseWriter, r *http.Request) {
	out, err := s.reg.LookupOutputSchema(chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, out.Model())
}

func (s *Server) getExample(w http.ResponseWriter, r *http.Request) {
	out, err := s.reg.LookupOutputSchema(chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, out.Example())
}

// parse decodes a JSON body as an instance of the class and echoes the
// instance back through its OutputSchema.
func (s *Server) parse(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	out, err := s.reg.LookupOutputSchema(name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.respond(w, r, http.StatusRequestEntityTooLarge, errorBody{Error: err.Error()})
		return
	}
	v, err := s.reg.ParseJSON(r.Context(), name, body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := out.Serialize(v)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Debug("parsed instance", zap.String("class", name), zap.String("request_id", middleware.GetReqID(r.Context())))
	s.respond(w, r, http.StatusOK, data)
}

type errorBody struct {
	Error  string              `json:"error" yaml:"error"`
	Class  string              `json:"class,omitempty" yaml:"class,omitempty"`
	Issues domainmap.Issues    `json:"issues,omitempty" yaml:"issues,omitempty"`
	Fields map[string][]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// fail maps errors to statuses: validation failures are 400, unknown classes
// 404, anything else 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := domainmap.AsValidationError(err); ok {
		s.respond(w, r, http.StatusBadRequest, errorBody{
			Error:  "validation failed",
			Class:  ve.Class,
			Issues: ve.Issues,
			Fields: ve.Fields(),
		})
		return
	}
	if errors.Is(err, domainmap.ErrSchemaNotFound) {
		s.respond(w, r, http.StatusNotFound, errorBody{Error: err.Error()})
		return
	}
	s.log.Error("request failed", zap.Error(err), zap.String("path", r.URL.Path))
	s.respond(w, r, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

// respond writes v as JSON, or YAML when the query asks for format=yaml.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	var (
		b   []byte
		err error
	)
	if r.URL.Query().Get("format") == "yaml" {
		w.Header().Set("Content-Type", "application/yaml")
		b, err = yaml.Marshal(v)
	} else {
		w.Header().Set("Content-Type", "application/json")
		b, err = gojson.Marshal(v)
	}
	if err != nil {
		s.log.Error("encode response", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
