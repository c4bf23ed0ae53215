// Package sonarr provides a read-only client for the Sonarr v3 API.
package sonarr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Series is a show as reported by Sonarr.
type Series struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Overview   string     `json:"overview"`
	Path       string     `json:"path"`
	Statistics Statistics `json:"statistics"`
}

// Statistics is the subset of Sonarr series statistics cliparr uses.
type Statistics struct {
	EpisodeFileCount int `json:"episodeFileCount"`
}

// UnmarshalJSON decodes a series and rejects records without an id or title.
func (s *Series) UnmarshalJSON(data []byte) error {
	type raw Series
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.ID == 0 {
		return errors.New("series: missing id")
	}
	if r.Title == "" {
		return fmt.Errorf("series %d: missing title", r.ID)
	}
	*s = Series(r)
	return nil
}

// Episode is a single episode as reported by Sonarr.
type Episode struct {
	ID            int64  `json:"id"`
	SeriesID      int64  `json:"seriesId"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title"`
	HasFile       bool   `json:"hasFile"`
	EpisodeFileID int64  `json:"episodeFileId"`
}

// UnmarshalJSON decodes an episode and rejects records without an id.
func (e *Episode) UnmarshalJSON(data []byte) error {
	type raw Episode
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.ID == 0 {
		return errors.New("episode: missing id")
	}
	*e = Episode(r)
	return nil
}

// HasEpisodeFile reports whether the episode points at a downloaded file.
func (e Episode) HasEpisodeFile() bool {
	return e.HasFile && e.EpisodeFileID > 0
}

// EpisodeFile is a media file Sonarr has on disk for an episode.
type EpisodeFile struct {
	ID      int64  `json:"id"`
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Quality string `json:"-"`
}

type episodeFileJSON struct {
	ID      int64  `json:"id"`
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Quality struct {
		Quality struct {
			Name string `json:"name"`
		} `json:"quality"`
	} `json:"quality"`
}

// UnmarshalJSON flattens the nested quality name and rejects files without
// a path.
func (f *EpisodeFile) UnmarshalJSON(data []byte) error {
	var r episodeFileJSON
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.Path == "" {
		return fmt.Errorf("episode file %d: missing path", r.ID)
	}
	*f = EpisodeFile{
		ID:      r.ID,
		Path:    r.Path,
		Size:    r.Size,
		Quality: r.Quality.Quality.Name,
	}
	return nil
}
