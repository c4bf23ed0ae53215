package ws

import (
	"context"

	"github.com/vmunix/cliparr/internal/events"
)

// Relay forwards events from a bus subscription to every client until ctx
// is done or ch closes.
func (h *Hub) Relay(ctx context.Context, ch <-chan events.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-ch:
			if !ok {
				return nil
			}
			if msg := eventMessage(e); msg != nil {
				h.send(msg)
			}
		}
	}
}

// eventMessage maps a bus event to its client message. Events clients do
// not care about map to nil.
func eventMessage(e events.Event) *Message {
	switch ev := e.(type) {
	case *events.ReconcileCompleted:
		return &Message{Event: MsgShowImported, Data: map[string]any{
			"status":           "scan_complete",
			"trigger":          ev.Trigger,
			"showsProcessed":   ev.ShowsProcessed,
			"showsImported":    ev.ShowsImported,
			"episodesImported": ev.EpisodesImported,
		}}
	case *events.ImportModeChanged:
		return &Message{Event: MsgImportModeChanged, Data: map[string]any{
			"mode":     ev.Mode,
			"previous": ev.Previous,
		}}
	case *events.ShowsDeleted:
		return &Message{Event: MsgShowsDeleted, Data: map[string]any{
			"showIds": ev.ShowIDs,
			"deleted": ev.Deleted,
		}}
	case *events.AnalysisScheduled:
		return &Message{Event: MsgAnalysisScheduled, Data: map[string]any{
			"show_id":       ev.ShowID,
			"show_title":    ev.ShowTitle,
			"episode_count": len(ev.JobIDs),
			"job_ids":       ev.JobIDs,
		}}
	case *events.AnalysisJobFinished:
		return &Message{Event: MsgAnalysisFinished, Data: map[string]any{
			"job_id":    ev.JobID,
			"file_path": ev.FilePath,
			"status":    ev.Status,
			"error":     ev.Error,
		}}
	}
	return nil
}
