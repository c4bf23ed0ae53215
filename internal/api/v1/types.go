package v1

import (
	"encoding/json"
	"time"

	"github.com/vmunix/cliparr/internal/analysis"
	"github.com/vmunix/cliparr/internal/library"
	"github.com/vmunix/cliparr/internal/probe"
	"github.com/vmunix/cliparr/internal/reconcile"
)

// showIDsRequest is the body for import and delete.
type showIDsRequest struct {
	ShowIDs []int64 `json:"showIds" validate:"required,min=1,dive,gt=0"`
}

type showSummaryResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	SonarrID      int64  `json:"sonarr_id"`
	Path          string `json:"path"`
	SeasonsCount  int    `json:"seasons_count"`
	EpisodesCount int    `json:"episodes_count"`
}

// listShowsResponse is the response for GET /shows.
type listShowsResponse struct {
	Shows      []showSummaryResponse `json:"shows"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

type fileResponse struct {
	ID       int64  `json:"id"`
	FilePath string `json:"filePath"`
	Size     int64  `json:"size"`
	Quality  string `json:"quality"`
}

type episodeResponse struct {
	ID              int64          `json:"id"`
	EpisodeNumber   int            `json:"episodeNumber"`
	Title           string         `json:"title"`
	SonarrEpisodeID int64          `json:"sonarrEpisodeId"`
	Files           []fileResponse `json:"files"`
}

type seasonResponse struct {
	SeasonNumber int               `json:"seasonNumber"`
	Episodes     []episodeResponse `json:"episodes"`
}

// showResponse is the response for GET /show/{id}.
type showResponse struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	Overview string           `json:"overview"`
	Path     string           `json:"path"`
	SonarrID int64            `json:"sonarr_id"`
	Seasons  []seasonResponse `json:"seasons"`
}

func showTreeToResponse(t *library.ShowTree) showResponse {
	resp := showResponse{
		ID:       t.ID,
		Title:    t.Title,
		Overview: t.Overview,
		Path:     t.Path,
		SonarrID: t.RemoteID,
		Seasons:  make([]seasonResponse, len(t.Seasons)),
	}
	for i, season := range t.Seasons {
		sr := seasonResponse{
			SeasonNumber: season.SeasonNumber,
			Episodes:     make([]episodeResponse, len(season.Episodes)),
		}
		for j, ep := range season.Episodes {
			er := episodeResponse{
				ID:              ep.ID,
				EpisodeNumber:   ep.EpisodeNumber,
				Title:           ep.Title,
				SonarrEpisodeID: ep.RemoteEpisodeID,
				Files:           make([]fileResponse, len(ep.Files)),
			}
			for k, f := range ep.Files {
				er.Files[k] = fileResponse{ID: f.ID, FilePath: f.FilePath, Size: f.Size, Quality: f.Quality}
			}
			sr.Episodes[j] = er
		}
		resp.Seasons[i] = sr
	}
	return resp
}

type unimportedResponse struct {
	Shows []reconcile.Unimported `json:"shows"`
}

type importResponse struct {
	ImportedCount  int                      `json:"importedCount"`
	ImportedShows  []reconcile.ImportedShow `json:"importedShows"`
	ShowsProcessed int                      `json:"showsProcessed"`
}

type deleteResponse struct {
	Status  string `json:"status"`
	Deleted int64  `json:"deleted"`
}

type importModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=none import auto"`
}

type importModeResponse struct {
	Status string `json:"status,omitempty"`
	Mode   string `json:"mode"`
}

type searchResult struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	SonarrID int64   `json:"sonarr_id"`
	Score    float64 `json:"score"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

type listJobsResponse struct {
	Jobs   []analysis.Job `json:"jobs"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type scheduleResponse struct {
	ShowID  int64                 `json:"show_id"`
	Results []analysis.ItemResult `json:"results"`
}

type cleanupResponse struct {
	Status              string `json:"status"`
	Days                int    `json:"days"`
	JobsDeleted         int64  `json:"jobs_deleted"`
	FingerprintsDeleted int64  `json:"fingerprints_deleted"`
}

type matchesResponse struct {
	FilePath string        `json:"file_path"`
	Matches  []probe.Match `json:"matches"`
}

type probeRequest struct {
	FilePath string `json:"filePath" validate:"required"`
}

// EventResponse is one entry of the event audit log.
type EventResponse struct {
	ID         int64           `json:"id"`
	EventType  string          `json:"event_type"`
	EntityType string          `json:"entity_type"`
	EntityID   int64           `json:"entity_id"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt string          `json:"occurred_at"`
}

type listEventsResponse struct {
	Events []EventResponse `json:"events"`
	Count  int             `json:"count"`
}

type statusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	ImportMode    string `json:"import_mode"`
	PollerRunning bool   `json:"poller_running"`
}

type websocketTestResponse struct {
	Status  string `json:"status"`
	Clients int    `json:"clients"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
