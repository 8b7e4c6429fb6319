// Package api serves the project API consumed by the front ends: token
// login and project detail. Error bodies carry either a "detail" message or
// a map of field names to messages.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/kidandcat/projectview/internal/db"
)

type Server struct {
	store *db.Store
	log   zerolog.Logger
}

func New(store *db.Store, log zerolog.Logger) *Server {
	return &Server{store: store, log: log}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/token/{$}", s.handleObtainToken)
	mux.Handle("GET /api/projects/{id}/{$}", s.requireToken(http.HandlerFunc(s.handleGetProject)))
}

// Handler wraps next with request logging and CORS for the given browser
// origins.
func (s *Server) Handler(next http.Handler, allowedOrigins []string) http.Handler {
	h := cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	})(next)
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(h)
	h = hlog.RequestIDHandler("req_id", "X-Request-Id")(h)
	return hlog.NewHandler(s.log)(h)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	if u := CurrentUser(r); u != nil {
		hlog.FromRequest(r).Debug().Str("user", u.Username).Int64("project_id", id).Msg("project requested")
	}

	p, err := s.store.GetProject(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Int64("project_id", id).Msg("error getting project")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
