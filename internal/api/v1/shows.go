package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vmunix/cliparr/internal/events"
	"github.com/vmunix/cliparr/internal/library"
)

func (s *Server) listShows(w http.ResponseWriter, r *http.Request) {
	page, err := s.deps.Catalog.ListShows(r.Context(),
		queryInt(r, "page", 1),
		queryInt(r, "page_size", library.DefaultPageSize))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listShowsResponse{
		Shows:      make([]showSummaryResponse, len(page.Shows)),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
	for i, sh := range page.Shows {
		resp.Shows[i] = showSummaryResponse{
			ID:            sh.ID,
			Title:         sh.Title,
			SonarrID:      sh.RemoteID,
			Path:          sh.Path,
			SeasonsCount:  sh.SeasonsCount,
			EpisodesCount: sh.EpisodesCount,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getShow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	tree, err := s.deps.Catalog.GetShowTree(r.Context(), id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Show not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, showTreeToResponse(tree))
}

func (s *Server) deleteShows(w http.ResponseWriter, r *http.Request) {
	var req showIDsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	deleted, err := s.deps.Catalog.DeleteShows(r.Context(), req.ShowIDs)
	if err != nil {
		s.logger.Error("delete shows failed", "ids", req.ShowIDs, "error", err)
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	s.logger.Info("deleted shows", "requested", len(req.ShowIDs), "deleted", deleted)

	if s.deps.Bus != nil {
		if err := s.deps.Bus.Publish(r.Context(), events.NewShowsDeleted(req.ShowIDs, deleted)); err != nil {
			s.logger.Warn("publish failed", "event", events.EventShowsDeleted, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, deleteResponse{Status: "success", Deleted: deleted})
}

func (s *Server) searchShows(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "q is required")
		return
	}

	matches, err := s.deps.Catalog.SearchShows(r.Context(), q, queryInt(r, "limit", 10))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := searchResponse{Query: q, Results: make([]searchResult, len(matches))}
	for i, m := range matches {
		resp.Results[i] = searchResult{ID: m.ID, Title: m.Title, SonarrID: m.RemoteID, Score: m.Score}
	}
	writeJSON(w, http.StatusOK, resp)
}
