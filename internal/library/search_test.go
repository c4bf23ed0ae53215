package library

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Breaking Bad", "breaking bad"},
		{"  The   Office ", "the office"},
		{"Pokémon", "pokemon"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SortTitle(tt.in))
		})
	}
}

func TestSearchShows(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	for i, title := range []string{"Breaking Bad", "Better Call Saul", "The Bear", "Bad Sisters"} {
		_, err := store.UpsertShow(ctx, int64(i+1), title, "", "")
		require.NoError(t, err)
	}

	t.Run("exact title ranks first", func(t *testing.T) {
		matches, err := store.SearchShows(ctx, "breaking bad", 10)
		require.NoError(t, err)
		require.NotEmpty(t, matches)
		assert.Equal(t, "Breaking Bad", matches[0].Title)
		assert.InDelta(t, 1.0, matches[0].Score, 0.001)
	})

	t.Run("substring scores high", func(t *testing.T) {
		matches, err := store.SearchShows(ctx, "saul", 10)
		require.NoError(t, err)
		require.NotEmpty(t, matches)
		assert.Equal(t, "Better Call Saul", matches[0].Title)
		assert.GreaterOrEqual(t, matches[0].Score, 0.9)
	})

	t.Run("limit", func(t *testing.T) {
		matches, err := store.SearchShows(ctx, "b", 1)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(matches), 1)
	})

	t.Run("blank query", func(t *testing.T) {
		matches, err := store.SearchShows(ctx, "  ", 10)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}
