package v1

import (
	"net/http"

	"github.com/vmunix/cliparr/internal/reconcile"
)

func (s *Server) listUnimported(w http.ResponseWriter, r *http.Request) {
	shows, err := s.deps.Reconciler.FindUnimported(r.Context())
	if err != nil {
		s.writeRemoteError(w, err)
		return
	}
	if shows == nil {
		shows = []reconcile.Unimported{}
	}
	writeJSON(w, http.StatusOK, unimportedResponse{Shows: shows})
}

func (s *Server) importShows(w http.ResponseWriter, r *http.Request) {
	var req showIDsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	res, err := s.deps.Reconciler.Import(r.Context(), req.ShowIDs)
	if err != nil {
		s.writeRemoteError(w, err)
		return
	}

	imported := res.ImportedShows
	if imported == nil {
		imported = []reconcile.ImportedShow{}
	}
	writeJSON(w, http.StatusOK, importResponse{
		ImportedCount:  res.ImportedCount,
		ImportedShows:  imported,
		ShowsProcessed: res.ShowsProcessed,
	})
}
