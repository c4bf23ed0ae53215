package main

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowsCommand(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/shows").
		RespondJSON(ShowsResponse{
			Shows:      []ShowSummary{{ID: 1, Title: "Severance", SonarrID: 77, SeasonsCount: 2, EpisodesCount: 19}},
			Total:      1,
			Page:       1,
			TotalPages: 1,
		}).
		Build()

	out, err := runCLI(t, srv.URL, "shows")
	require.NoError(t, err)
	assert.Contains(t, out, "Severance")
	assert.Contains(t, out, "Page 1 of 1 (1 shows)")
}

func TestShowsCommand_JSON(t *testing.T) {
	srv := newMockServer(t).RespondJSON(ShowsResponse{Total: 0}).Build()

	out, err := runCLI(t, srv.URL, "--json", "shows")
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 0`)
}

func TestShowCommand(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/show/5").
		RespondJSON(ShowResponse{
			ID:    5,
			Title: "Dark",
			Seasons: []SeasonResponse{{
				SeasonNumber: 1,
				Episodes: []EpisodeResponse{{
					EpisodeNumber: 3,
					Title:         "Past and Present",
					Files:         []FileResponse{{FilePath: "/tv/dark/s01e03.mkv", Quality: "Bluray-1080p"}},
				}},
			}},
		}).
		Build()

	out, err := runCLI(t, srv.URL, "show", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "S01E03")
	assert.Contains(t, out, "Bluray-1080p")
}

func TestShowCommand_InvalidID(t *testing.T) {
	_, err := runCLI(t, "http://127.0.0.1:1", "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid show id")
}

func TestImportCommand(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/sonarr/import").
		ExpectMethod(http.MethodPost).
		RespondJSON(map[string]any{
			"importedCount":  1,
			"showsProcessed": 1,
			"importedShows":  []any{map[string]any{"id": 4, "title": "Andor", "episodesImported": 12}},
		}).
		Build()

	out, err := runCLI(t, srv.URL, "import", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Processed 1 shows, imported 1")
	assert.Contains(t, out, "Andor")
}

func TestImportCommand_RejectsBadIDs(t *testing.T) {
	_, err := runCLI(t, "http://127.0.0.1:1", "import", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid id "0"`)
}

func TestModeCommand(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		srv := newMockServer(t).
			ExpectMethod(http.MethodGet).
			RespondJSON(ModeResponse{Mode: "import"}).
			Build()

		out, err := runCLI(t, srv.URL, "mode")
		require.NoError(t, err)
		assert.Contains(t, out, "Import mode: import")
	})

	t.Run("set", func(t *testing.T) {
		srv := newMockServer(t).
			ExpectMethod(http.MethodPost).
			ExpectBody(map[string]any{"mode": "auto"}).
			RespondJSON(ModeResponse{Status: "ok", Mode: "auto"}).
			Build()

		out, err := runCLI(t, srv.URL, "mode", "auto")
		require.NoError(t, err)
		assert.Contains(t, out, "Import mode set to auto")
	})

	t.Run("invalid", func(t *testing.T) {
		srv := newMockServer(t).
			RespondError(http.StatusBadRequest, "INVALID_MODE", "bad mode").
			Build()

		_, err := runCLI(t, srv.URL, "mode", "bogus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "use none, import or auto")
	})
}

func TestJobsCommand(t *testing.T) {
	msg := "no duration"
	srv := newMockServer(t).
		ExpectPath("/api/audio-analysis/jobs").
		RespondJSON(JobsResponse{
			Jobs: []JobResponse{{
				ID:            "0123456789abcdef",
				ShowTitle:     "Dark",
				SeasonNumber:  1,
				EpisodeNumber: 2,
				Status:        "failed",
				ErrorMessage:  &msg,
			}},
			Total: 1,
		}).
		Build()

	out, err := runCLI(t, srv.URL, "jobs", "--status", "failed")
	require.NoError(t, err)
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "no duration")
	assert.Contains(t, out, "1 of 1 jobs")
}

func TestStatusCommand(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/status").
		RespondJSON(StatusResponse{Status: "ok", Version: "1.0.0", ImportMode: "auto", PollerRunning: true}).
		Build()

	out, err := runCLI(t, srv.URL, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:     1.0.0")
	assert.Contains(t, out, "auto (poller running)")
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliparr", "config.toml")
	t.Setenv("SONARR_API_KEY", "secret")
	t.Setenv("CLIPARR_DATA_DIR", t.TempDir())

	out, err := runCLI(t, "http://unused", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = runCLI(t, "http://unused", "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = runCLI(t, "http://unused", "config", "test", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid!")
}

func TestConfigTest_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 70000\n[sonarr]\napi_key = \"${CLIPARR_TEST_UNSET_KEY}\"\n"), 0o644))

	out, err := runCLI(t, "http://unused", "config", "test", path)
	require.Error(t, err)
	assert.Contains(t, out, "CLIPARR_TEST_UNSET_KEY")
}
