// Package server is the HTTP backend the phrasebook talks to for translations and sync.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/phrasebook/internal/config"
	"github.com/at-ishikawa/phrasebook/internal/inference"
	"github.com/at-ishikawa/phrasebook/internal/storage"
)

type Server struct {
	cfg        config.ServerConfig
	client     inference.Client
	store      storage.Store
	validate   *validator.Validate
	translator ut.Translator
}

func New(cfg config.ServerConfig, client inference.Client, store storage.Store) (*Server, error) {
	validate, translator, err := config.NewValidator()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:        cfg,
		client:     client,
		store:      store,
		validate:   validate,
		translator: translator,
	}, nil
}

// Handler routes the API. Only the /api routes are rate limited.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(logRequests)
	r.Use(corsMiddleware(s.cfg.CORS.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		if s.cfg.RateLimit.RequestsPerSecond > 0 {
			r.Use(RateLimit(s.cfg.RateLimit.RequestsPerSecond, s.cfg.RateLimit.Burst))
		}
		r.Post("/translate", s.HandleTranslate)
		r.Post("/translate-image", s.HandleTranslateImage)
		r.Post("/sync/push", s.HandleSyncPush)
		r.Post("/sync/pull", s.HandleSyncPull)
	})
	return r
}

// decodeJSON reads and validates a request body. It writes the error response itself and
// reports whether the handler should go on.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(config.TranslateError(err, s.translator)))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write a response", "error", err)
	}
}

func errorResponse(message string) map[string]string {
	return map[string]string{"error": message}
}
