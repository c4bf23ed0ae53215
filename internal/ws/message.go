// Package ws pushes catalog events to browser clients over WebSocket and
// answers a small set of diagnostic commands.
package ws

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// Outbound message names.
const (
	MsgConnectionStatus  = "connection_status"
	MsgShowImported      = "show_imported"
	MsgImportModeChanged = "import_mode_changed"
	MsgShowsDeleted      = "shows_deleted"
	MsgAnalysisScheduled = "audio_analysis_scheduled"
	MsgAnalysisFinished  = "audio_analysis_job_finished"
	MsgPong              = "pong"
	MsgTestEventResponse = "test_event_response"
	MsgCommandFailure    = "command_failure"
)

// Command names accepted from clients.
const (
	CmdPing      = "ping"
	CmdTestEvent = "test_event"
)

// Message is the envelope for both directions. ID is echoed on replies so
// clients can correlate them with their command.
type Message struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data,omitempty"`
	ID    int            `json:"id,omitempty"`

	origin *uuid.UUID
	target *uuid.UUID
}

// Reply builds a message addressed to the sender of m.
func (m *Message) Reply(event string, data map[string]any) *Message {
	return &Message{Event: event, Data: data, ID: m.ID, target: m.origin}
}

// Decode copies the command data into out.
func (m *Message) Decode(out any) error {
	if err := mapstructure.Decode(m.Data, out); err != nil {
		return fmt.Errorf("decode %s arguments: %w", m.Event, err)
	}
	return nil
}
