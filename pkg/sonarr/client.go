package sonarr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Sentinel errors for Sonarr API responses.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized: invalid or missing API key")
	ErrUnavailable  = errors.New("sonarr unavailable")
	ErrMalformed    = errors.New("malformed sonarr response")
)

// Client is a Sonarr v3 API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. It applies on top of any
// client given to WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "sonarr")
	}
}

// New creates a Sonarr client for the instance at baseURL.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// get performs a GET against endpoint and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, endpoint, err)
	}
	return nil
}

// StatusError is a non-2xx response that has no more specific sentinel.
// It matches ErrUnavailable.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string { return "sonarr API error: " + e.Status }

func (e *StatusError) Unwrap() error { return ErrUnavailable }

// checkResponse maps HTTP status codes to sentinel errors.
func checkResponse(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	default:
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
}

// ListSeries fetches every series Sonarr manages.
func (c *Client) ListSeries(ctx context.Context) ([]Series, error) {
	start := time.Now()

	var series []Series
	if err := c.get(ctx, "/api/v3/series", &series); err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	if series == nil {
		return nil, fmt.Errorf("list series: %w: expected a list", ErrMalformed)
	}

	if c.log != nil {
		c.log.Debug("fetched series", "count", len(series), "duration_ms", time.Since(start).Milliseconds())
	}
	return series, nil
}

// ListEpisodes fetches the episodes of a series. With hasFileOnly set, only
// episodes that have a downloaded file are returned.
func (c *Client) ListEpisodes(ctx context.Context, seriesID int64, hasFileOnly bool) ([]Episode, error) {
	start := time.Now()

	endpoint := "/api/v3/episode?seriesId=" + url.QueryEscape(strconv.FormatInt(seriesID, 10))
	var episodes []Episode
	if err := c.get(ctx, endpoint, &episodes); err != nil {
		return nil, fmt.Errorf("list episodes for series %d: %w", seriesID, err)
	}
	if episodes == nil {
		return nil, fmt.Errorf("list episodes for series %d: %w: expected a list", seriesID, ErrMalformed)
	}

	if hasFileOnly {
		filtered := episodes[:0]
		for _, e := range episodes {
			if e.HasEpisodeFile() {
				filtered = append(filtered, e)
			}
		}
		episodes = filtered
	}

	if c.log != nil {
		c.log.Debug("fetched episodes", "series_id", seriesID, "count", len(episodes), "duration_ms", time.Since(start).Milliseconds())
	}
	return episodes, nil
}

// GetEpisodeFile fetches a single episode file. A missing or invalid id
// returns ErrNotFound.
func (c *Client) GetEpisodeFile(ctx context.Context, fileID int64) (*EpisodeFile, error) {
	start := time.Now()

	var file EpisodeFile
	err := c.get(ctx, fmt.Sprintf("/api/v3/episodefile/%d", fileID), &file)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusBadRequest {
			err = ErrNotFound
		}
		if c.log != nil && errors.Is(err, ErrNotFound) {
			c.log.Debug("episode file not found", "id", fileID)
		}
		return nil, fmt.Errorf("get episode file %d: %w", fileID, err)
	}

	if c.log != nil {
		c.log.Debug("fetched episode file", "id", fileID, "duration_ms", time.Since(start).Milliseconds())
	}
	return &file, nil
}
