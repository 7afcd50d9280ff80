// Package admin exposes a small operator HTTP API next to the bot: a health
// check, a view of stored responses and a manual re-export for rows whose
// export failed.
package admin

import (
	"SurveyBot/model"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RecordReader reads stored responses.
type RecordReader interface {
	Read(ctx context.Context, userID int64) (*model.ResponseRecord, error)
}

// Exporter re-sends a stored record to the export sink.
type Exporter interface {
	Export(ctx context.Context, userID int64) error
}

// Server is the operator HTTP API.
type Server struct {
	records  RecordReader
	exporter Exporter
	token    string
	logger   zerolog.Logger
}

// NewServer creates the API. An empty token disables authentication.
func NewServer(records RecordReader, exporter Exporter, token string, logger zerolog.Logger) *Server {
	return &Server{
		records:  records,
		exporter: exporter,
		token:    token,
		logger:   logger.With().Str("component", "admin").Logger(),
	}
}

// Router builds the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/responses/{userID}", s.handleGetResponse)
		r.Post("/responses/{userID}/export", s.handleExport)
	})

	return r
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("admin API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleGetResponse(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	record, err := s.records.Read(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := s.exporter.Export(r.Context(), userID); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info().Int64("user_id", userID).Msg("record re-exported by operator")
	writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "exported": true})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, model.ErrSinkUnavailable):
		status = http.StatusBadGateway
	}
	if status >= 500 {
		s.logger.Error().Err(err).Int("status", status).Msg("admin request failed")
	}
	writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			got, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) != 1 {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return 0, false
	}
	return userID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
