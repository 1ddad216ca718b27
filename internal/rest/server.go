// Package rest is the thin HTTP dispatcher over the representation
// engine: route registration, identity resolution, and header plumbing
// for the conditional-request protocol. All representation logic lives
// in the rep package.
package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/brennanma/restrack/internal/rep"
	"github.com/brennanma/restrack/internal/sqlite"
	"github.com/brennanma/restrack/pkg/types"
)

// Server wires the store and the representation engine to HTTP routes.
type Server struct {
	store *sqlite.Store
	codec *rep.Codec
	ser   *rep.Serializer
	deser *rep.Deserializer
	log   *slog.Logger
}

// NewServer builds a Server from validated configuration.
func NewServer(cfg types.Config, store *sqlite.Store, log *slog.Logger) *Server {
	codec := rep.NewCodec(cfg.BaseURI, cfg.Org)
	return &Server{
		store: store,
		codec: codec,
		ser:   rep.NewSerializer(codec, log),
		deser: rep.NewDeserializer(log),
		log:   log,
	}
}

// Router returns the server's HTTP handler. One route set is
// registered per record schema; the handlers themselves are generic.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.authenticate)

	for _, schema := range types.Schemas() {
		schema := schema
		r.Post("/"+schema.Type, s.handleCreate(schema))
		r.Post("/"+schema.Type+"s", s.handleSearch(schema))
		r.Get("/"+schema.Type+"/{id}", s.handleGet(schema))
		r.Put("/"+schema.Type+"/{id}", s.handleUpdate(schema))
		r.Get("/"+schema.Type+"/{id}/history", s.handleHistory(schema))
		if len(schema.Actions) > 0 {
			r.Post("/"+schema.Type+"/{id}/{action}", s.handleAction(schema))
		}
	}
	r.Get("/download/cf/{valueID}", s.handleDownload)

	return r
}

// requestLogger logs one line per request after it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// writeJSON emits a JSON response with the API's content type.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", "error", err)
	}
}

// writeError emits the standard {"message": ...} error body.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"message": msg})
}
