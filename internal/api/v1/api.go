// Package v1 implements the REST API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/vmunix/cliparr/pkg/sonarr"
)

// Server is the v1 API server.
type Server struct {
	deps     ServerDeps
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a new v1 API server.
func New(deps ServerDeps, logger *slog.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDependency, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		deps:     deps,
		validate: validator.New(),
		logger:   logger.With("component", "api"),
	}, nil
}

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Shows
	r.Get("/shows", s.listShows)
	r.Get("/show/{id}", s.getShow)

	r.Route("/api", func(r chi.Router) {
		r.Get("/imported-shows", s.listShows)
		r.Post("/imported-shows", s.deleteShows)
		r.Delete("/imported-shows", s.deleteShows)
		r.Get("/series/{id}", s.getShow)
		r.Get("/shows/search", s.searchShows)

		// Sonarr
		r.Get("/sonarr/unimported", s.listUnimported)
		r.Post("/sonarr/import", s.importShows)

		// Settings
		r.Get("/settings/import-mode", s.getImportMode)
		r.Post("/settings/import-mode", s.setImportMode)

		// Analysis
		r.Route("/audio-analysis", func(r chi.Router) {
			r.Get("/jobs", s.requireJobs(s.listJobs))
			r.Post("/schedule", s.requireAnalyzer(s.scheduleAnalysis))
			r.Post("/cleanup", s.requireJobs(s.cleanupAnalysis))
			r.Get("/matches", s.requireDigests(s.listMatches))
		})
		r.Post("/probe", s.requireProber(s.probeFile))

		// System
		r.Get("/events", s.requireEvents(s.listEvents))
		r.Get("/status", s.getStatus)
		r.Get("/websocket-test", s.requireHub(s.websocketTest))
	})

	if s.deps.Hub != nil {
		r.Handle("/ws", s.deps.Hub)
	}
	return r
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeRemoteError maps a failed Sonarr call to 503, anything else to 500.
func (s *Server) writeRemoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sonarr.ErrUnavailable),
		errors.Is(err, sonarr.ErrUnauthorized),
		errors.Is(err, sonarr.ErrNotFound),
		errors.Is(err, sonarr.ErrMalformed):
		s.logger.Error("sonarr request failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "REMOTE_UNAVAILABLE", err.Error())
	default:
		s.logger.Error("catalog update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
	}
}

// decodeBody reads a JSON body into dst and validates it. It writes a 400
// and returns false on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.logger.Debug("invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.logger.Debug("request validation failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return 0, errors.New("missing path parameter: id")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", idStr)
	}
	return id, nil
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
