package library

import "time"

// Show is a series mirrored from Sonarr.
type Show struct {
	ID        int64     `db:"id"`
	RemoteID  int64     `db:"sonarr_id"`
	Title     string    `db:"title"`
	SortTitle string    `db:"sort_title"`
	Overview  string    `db:"overview"`
	Path      string    `db:"path"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ShowSummary is a Show with child counts, as returned by ListShows.
type ShowSummary struct {
	Show
	SeasonsCount  int `db:"seasons_count"`
	EpisodesCount int `db:"episodes_count"`
}

type Season struct {
	ID           int64     `db:"id"`
	ShowID       int64     `db:"show_id"`
	SeasonNumber int       `db:"season_number"`
	CreatedAt    time.Time `db:"created_at"`
}

type Episode struct {
	ID              int64     `db:"id"`
	SeasonID        int64     `db:"season_id"`
	EpisodeNumber   int       `db:"episode_number"`
	Title           string    `db:"title"`
	RemoteEpisodeID int64     `db:"sonarr_episode_id"`
	CreatedAt       time.Time `db:"created_at"`
}

// EpisodeFile is one recorded file for an episode. Files are never
// deduplicated, so an episode keeps its file history.
type EpisodeFile struct {
	ID        int64     `db:"id"`
	EpisodeID int64     `db:"episode_id"`
	FilePath  string    `db:"file_path"`
	Size      int64     `db:"size"`
	Quality   string    `db:"quality"`
	CreatedAt time.Time `db:"created_at"`
}

// ShowTree is a show with its seasons, episodes and files nested.
type ShowTree struct {
	Show
	Seasons []SeasonTree
}

type SeasonTree struct {
	Season
	Episodes []EpisodeTree
}

type EpisodeTree struct {
	Episode
	Files []EpisodeFile
}

// ShowPage is one page of ListShows.
type ShowPage struct {
	Shows      []ShowSummary
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}
