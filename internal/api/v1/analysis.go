package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/vmunix/cliparr/internal/analysis"
	"github.com/vmunix/cliparr/internal/probe"
)

// defaultCleanupDays is the retention used when cleanup has no days parameter.
const defaultCleanupDays = 30

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	if limit < 0 || offset < 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit and offset must be non-negative")
		return
	}

	status := analysis.Status(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unknown status "+string(status))
		return
	}

	jobs, total, err := s.deps.Jobs.List(r.Context(), analysis.ListFilter{
		Status: status,
		Limit:  uint64(limit),
		Offset: uint64(offset),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if jobs == nil {
		jobs = []analysis.Job{}
	}

	writeJSON(w, http.StatusOK, listJobsResponse{Jobs: jobs, Total: total, Limit: limit, Offset: offset})
}

func (s *Server) scheduleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysis.ScheduleRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	results, err := s.deps.Analyzer.Schedule(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, scheduleResponse{ShowID: req.ShowID, Results: results})
}

func (s *Server) cleanupAnalysis(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", defaultCleanupDays)
	if days < 1 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "days must be positive")
		return
	}
	age := time.Duration(days) * 24 * time.Hour

	resp := cleanupResponse{Status: "success", Days: days}
	var err error
	if resp.JobsDeleted, err = s.deps.Jobs.Cleanup(r.Context(), age); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if s.deps.Digests != nil {
		if resp.FingerprintsDeleted, err = s.deps.Digests.Cleanup(r.Context(), age); err != nil {
			writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
			return
		}
	}
	s.logger.Info("analysis cleanup", "days", days, "jobs", resp.JobsDeleted, "fingerprints", resp.FingerprintsDeleted)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("file_path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "file_path is required")
		return
	}

	matches, err := s.deps.Digests.FindMatches(r.Context(), path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if matches == nil {
		matches = []probe.Match{}
	}
	writeJSON(w, http.StatusOK, matchesResponse{FilePath: path, Matches: matches})
}

func (s *Server) probeFile(w http.ResponseWriter, r *http.Request) {
	var req probeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.deps.Prober.Probe(r.Context(), req.FilePath)
	if err != nil {
		if errors.Is(err, probe.ErrNoDuration) {
			writeError(w, http.StatusUnprocessableEntity, "PROBE_FAILED", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "PROBE_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}
