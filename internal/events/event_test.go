package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseEvent_ImplementsEvent(t *testing.T) {
	now := time.Now()
	e := BaseEvent{
		Type:      "test.event",
		Entity:    EntityShow,
		ID:        42,
		Timestamp: now,
	}

	assert.Equal(t, "test.event", e.EventType())
	assert.Equal(t, EntityShow, e.EntityType())
	assert.Equal(t, int64(42), e.EntityID())
	assert.Equal(t, now, e.OccurredAt())
}

func TestCatalogEvents(t *testing.T) {
	tests := []struct {
		name       string
		event      Event
		wantType   string
		wantEntity string
		wantID     int64
	}{
		{"reconcile", NewReconcileCompleted(TriggerManual, 3, 1, 7), EventReconcileCompleted, EntityCatalog, 0},
		{"mode", NewImportModeChanged("auto", "none"), EventImportModeChanged, EntitySettings, 0},
		{"deleted", NewShowsDeleted([]int64{1, 2}, 2), EventShowsDeleted, EntityShow, 0},
		{"scheduled", NewAnalysisScheduled(9, "Show", []string{"a"}), EventAnalysisScheduled, EntityShow, 9},
		{"finished", NewAnalysisJobFinished(9, "a", "/x.mkv", "completed", ""), EventAnalysisJobFinished, EntityAnalysisJob, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.event.EventType())
			assert.Equal(t, tt.wantEntity, tt.event.EntityType())
			assert.Equal(t, tt.wantID, tt.event.EntityID())
			assert.False(t, tt.event.OccurredAt().IsZero())
		})
	}
}
