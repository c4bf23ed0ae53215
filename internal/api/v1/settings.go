package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vmunix/cliparr/internal/poller"
)

func (s *Server) getImportMode(w http.ResponseWriter, r *http.Request) {
	mode, err := s.deps.Modes.Mode(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, importModeResponse{Mode: mode})
}

func (s *Server) setImportMode(w http.ResponseWriter, r *http.Request) {
	var req importModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body")
		return
	}
	req.Mode = strings.ToLower(strings.TrimSpace(req.Mode))
	if err := s.validate.Struct(&req); err != nil {
		s.logger.Debug("rejected import mode", "mode", req.Mode)
		writeError(w, http.StatusBadRequest, "INVALID_MODE", "mode must be one of none, import, auto")
		return
	}

	if err := s.deps.Modes.SetMode(r.Context(), req.Mode); err != nil {
		if errors.Is(err, poller.ErrInvalidMode) {
			writeError(w, http.StatusBadRequest, "INVALID_MODE", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, importModeResponse{Status: "ok", Mode: req.Mode})
}
