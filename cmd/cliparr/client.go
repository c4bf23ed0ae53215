package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// APIError is a non-2xx response from the daemon.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// Client wraps HTTP calls to the cliparr daemon.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new cliparr API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // imports walk the whole Sonarr catalog
		},
	}
}

func (c *Client) do(method, path string, body, result any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// API response types (mirror server types)

type ShowSummary struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	SonarrID      int64  `json:"sonarr_id"`
	Path          string `json:"path"`
	SeasonsCount  int    `json:"seasons_count"`
	EpisodesCount int    `json:"episodes_count"`
}

type ShowsResponse struct {
	Shows      []ShowSummary `json:"shows"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

type FileResponse struct {
	ID       int64  `json:"id"`
	FilePath string `json:"filePath"`
	Size     int64  `json:"size"`
	Quality  string `json:"quality"`
}

type EpisodeResponse struct {
	ID              int64          `json:"id"`
	EpisodeNumber   int            `json:"episodeNumber"`
	Title           string         `json:"title"`
	SonarrEpisodeID int64          `json:"sonarrEpisodeId"`
	Files           []FileResponse `json:"files"`
}

type SeasonResponse struct {
	SeasonNumber int               `json:"seasonNumber"`
	Episodes     []EpisodeResponse `json:"episodes"`
}

type ShowResponse struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	Overview string           `json:"overview"`
	Path     string           `json:"path"`
	SonarrID int64            `json:"sonarr_id"`
	Seasons  []SeasonResponse `json:"seasons"`
}

type UnimportedShow struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Path              string `json:"path"`
	EpisodeFileCount  int    `json:"episodeFileCount"`
	LocalEpisodeCount int    `json:"localEpisodeCount"`
}

type UnimportedResponse struct {
	Shows []UnimportedShow `json:"shows"`
}

type ImportResponse struct {
	ImportedCount int `json:"importedCount"`
	ImportedShows []struct {
		ID               int64  `json:"id"`
		Title            string `json:"title"`
		EpisodesImported int    `json:"episodesImported"`
	} `json:"importedShows"`
	ShowsProcessed int `json:"showsProcessed"`
}

type DeleteResponse struct {
	Status  string `json:"status"`
	Deleted int64  `json:"deleted"`
}

type ModeResponse struct {
	Status string `json:"status,omitempty"`
	Mode   string `json:"mode"`
}

type SearchResponse struct {
	Query   string `json:"query"`
	Results []struct {
		ID       int64   `json:"id"`
		Title    string  `json:"title"`
		SonarrID int64   `json:"sonarr_id"`
		Score    float64 `json:"score"`
	} `json:"results"`
}

type JobResponse struct {
	ID            string     `json:"id"`
	ShowID        int64      `json:"show_id"`
	ShowTitle     string     `json:"show_title"`
	SeasonNumber  int        `json:"season_number"`
	EpisodeNumber int        `json:"episode_number"`
	FilePath      string     `json:"file_path"`
	Status        string     `json:"status"`
	Progress      int        `json:"progress"`
	ErrorMessage  *string    `json:"error_message"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

type JobsResponse struct {
	Jobs   []JobResponse `json:"jobs"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type StatusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	ImportMode    string `json:"import_mode"`
	PollerRunning bool   `json:"poller_running"`
}

type EventsResponse struct {
	Events []struct {
		ID         int64           `json:"id"`
		EventType  string          `json:"event_type"`
		EntityType string          `json:"entity_type"`
		EntityID   int64           `json:"entity_id"`
		Payload    json.RawMessage `json:"payload"`
		OccurredAt string          `json:"occurred_at"`
	} `json:"events"`
	Count int `json:"count"`
}

// API methods

func (c *Client) Shows(page, pageSize int) (*ShowsResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	var resp ShowsResponse
	if err := c.get("/shows?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Show(id int64) (*ShowResponse, error) {
	var resp ShowResponse
	if err := c.get(fmt.Sprintf("/show/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Unimported() (*UnimportedResponse, error) {
	var resp UnimportedResponse
	if err := c.get("/api/sonarr/unimported", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Import(ids []int64) (*ImportResponse, error) {
	var resp ImportResponse
	if err := c.post("/api/sonarr/import", map[string]any{"showIds": ids}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Delete(ids []int64) (*DeleteResponse, error) {
	var resp DeleteResponse
	if err := c.do(http.MethodDelete, "/api/imported-shows", map[string]any{"showIds": ids}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Mode() (*ModeResponse, error) {
	var resp ModeResponse
	if err := c.get("/api/settings/import-mode", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetMode(mode string) (*ModeResponse, error) {
	var resp ModeResponse
	if err := c.post("/api/settings/import-mode", map[string]string{"mode": mode}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Search(query string, limit int) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	var resp SearchResponse
	if err := c.get("/api/shows/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Jobs(status string, limit, offset int) (*JobsResponse, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	var resp JobsResponse
	if err := c.get("/api/audio-analysis/jobs?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Events(limit int) (*EventsResponse, error) {
	var resp EventsResponse
	if err := c.get(fmt.Sprintf("/api/events?limit=%d", limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
