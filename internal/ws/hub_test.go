package ws

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/cliparr/internal/events"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Run(ctx)
		close(done)
	}()

	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		cancel()
		<-done
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	msg := read(t, conn)
	require.Equal(t, MsgConnectionStatus, msg.Event)
	assert.Equal(t, "connected", msg.Data["status"])
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_ConnectAndCount(t *testing.T) {
	hub, url := startHub(t)
	assert.Equal(t, 0, hub.Clients())

	conn := dial(t, url)
	assert.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_Ping(t *testing.T) {
	_, url := startHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]any{"event": "ping", "id": 7, "data": map[string]any{"timestamp": 1234}}))
	msg := read(t, conn)
	assert.Equal(t, MsgPong, msg.Event)
	assert.Equal(t, 7, msg.ID)
	assert.InDelta(t, 1234, msg.Data["clientTimestamp"], 0)
	assert.NotNil(t, msg.Data["serverTimestamp"])
}

func TestHub_TestEvent(t *testing.T) {
	_, url := startHub(t)
	conn := dial(t, url)

	t.Run("valid timestamp", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]any{"event": "test_event", "data": map[string]any{"timestamp": 1700000000000}}))
		msg := read(t, conn)
		assert.Equal(t, MsgTestEventResponse, msg.Event)
		assert.Equal(t, "success", msg.Data["status"])
		assert.InDelta(t, 1700000000000, msg.Data["clientTimestamp"], 0)
		info, ok := msg.Data["serverInfo"].(map[string]any)
		require.True(t, ok)
		assert.NotEmpty(t, info["go_version"])
	})

	t.Run("missing timestamp", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]any{"event": "test_event", "data": map[string]any{}}))
		msg := read(t, conn)
		assert.Equal(t, "error", msg.Data["status"])
	})

	t.Run("non-numeric timestamp", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]any{"event": "test_event", "data": map[string]any{"timestamp": "soon"}}))
		msg := read(t, conn)
		assert.Equal(t, "error", msg.Data["status"])
		assert.Equal(t, "soon", msg.Data["receivedTimestamp"])
	})
}

func TestHub_UnknownCommand(t *testing.T) {
	_, url := startHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]any{"event": "reboot", "id": 3}))
	msg := read(t, conn)
	assert.Equal(t, MsgCommandFailure, msg.Event)
	assert.Equal(t, "reboot", msg.Data["command"])
	assert.Equal(t, 3, msg.ID)
}

func TestHub_RepliesOnlyToSender(t *testing.T) {
	_, url := startHub(t)
	a := dial(t, url)
	b := dial(t, url)

	require.NoError(t, a.WriteJSON(map[string]any{"event": "ping"}))
	assert.Equal(t, MsgPong, read(t, a).Event)

	require.NoError(t, b.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	var msg Message
	assert.Error(t, b.ReadJSON(&msg))
}

func TestHub_RelayBroadcastsBusEvents(t *testing.T) {
	hub, url := startHub(t)
	a := dial(t, url)
	b := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

	bus := events.NewBus(nil, nil)
	t.Cleanup(func() { _ = bus.Close() })

	sub := bus.SubscribeAll(8)

	ctx, cancel := context.WithCancel(context.Background())
	relayed := make(chan struct{})
	go func() {
		_ = hub.Relay(ctx, sub)
		close(relayed)
	}()
	t.Cleanup(func() {
		cancel()
		<-relayed
	})

	require.NoError(t, bus.Publish(context.Background(), events.NewReconcileCompleted(events.TriggerManual, 3, 1, 12)))

	assert.Equal(t, MsgShowImported, read(t, a).Event)
	msg := read(t, b)
	assert.Equal(t, MsgShowImported, msg.Event)
	assert.Equal(t, "scan_complete", msg.Data["status"])
	assert.InDelta(t, 12, msg.Data["episodesImported"], 0)
}

func TestHub_StalledClientDoesNotDelayOthers(t *testing.T) {
	hub, url := startHub(t)
	fast := dial(t, url)
	_ = dial(t, url) // never reads after the welcome
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

	blob := strings.Repeat("x", 256<<10)
	for i := range 200 {
		hub.Broadcast("bulk", map[string]any{"n": i, "blob": blob})
		msg := read(t, fast)
		require.Equal(t, "bulk", msg.Event)
		require.InDelta(t, i, msg.Data["n"], 0)
	}

	assert.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond,
		"stalled client should be disconnected")
}

func TestEventMessage(t *testing.T) {
	tests := []struct {
		name  string
		event events.Event
		want  string
	}{
		{"reconcile", events.NewReconcileCompleted(events.TriggerAuto, 1, 1, 1), MsgShowImported},
		{"mode", events.NewImportModeChanged("auto", "none"), MsgImportModeChanged},
		{"deleted", events.NewShowsDeleted([]int64{1, 2}, 2), MsgShowsDeleted},
		{"scheduled", events.NewAnalysisScheduled(4, "Show", []string{"a", "b"}), MsgAnalysisScheduled},
		{"finished", events.NewAnalysisJobFinished(4, "a", "/x.mkv", "completed", ""), MsgAnalysisFinished},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := eventMessage(tt.event)
			require.NotNil(t, msg)
			assert.Equal(t, tt.want, msg.Event)
		})
	}

	scheduled := eventMessage(events.NewAnalysisScheduled(4, "Show", []string{"a", "b"}))
	assert.Equal(t, 2, scheduled.Data["episode_count"])
}
