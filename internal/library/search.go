package library

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// MinSearchScore is the lowest similarity SearchShows returns.
const MinSearchScore = 0.5

// ShowMatch is a SearchShows hit.
type ShowMatch struct {
	Show
	Score float64
}

// SearchShows ranks local shows against query using Jaro-Winkler similarity
// over folded titles. A title containing the query scores at least 0.9.
func (s *Store) SearchShows(ctx context.Context, query string, limit int) ([]ShowMatch, error) {
	key := searchKey(query)
	if key == "" {
		return []ShowMatch{}, nil
	}
	if limit < 1 {
		limit = 10
	}

	var shows []Show
	err := s.db.SelectContext(ctx, &shows, `
		SELECT id, sonarr_id, title, sort_title, overview, path, created_at, updated_at
		FROM shows`)
	if err != nil {
		return nil, fmt.Errorf("search shows: %w", mapSQLiteError(err))
	}

	matches := make([]ShowMatch, 0, len(shows))
	for _, show := range shows {
		candidate := searchKey(show.Title)
		score := float64(edlib.JaroWinklerSimilarity(key, candidate))
		if strings.Contains(candidate, key) {
			score = max(score, 0.9)
		}
		if score >= MinSearchScore {
			matches = append(matches, ShowMatch{Show: show, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].SortTitle < matches[j].SortTitle
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
