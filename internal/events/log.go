package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// EventLog persists events to SQLite.
type EventLog struct {
	db *sqlx.DB
}

// NewEventLog creates a new event log.
func NewEventLog(db *sqlx.DB) *EventLog {
	return &EventLog{db: db}
}

// Append persists an event and returns its ID.
func (l *EventLog) Append(ctx context.Context, e Event) (int64, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("marshal event: %w", err)
	}

	result, err := l.db.ExecContext(ctx, `
		INSERT INTO events (event_type, entity_type, entity_id, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.EventType(), e.EntityType(), e.EntityID(), string(payload), e.OccurredAt().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	return result.LastInsertId()
}

// RawEvent is a persisted event with its JSON payload.
type RawEvent struct {
	ID         int64     `db:"id" json:"id"`
	EventType  string    `db:"event_type" json:"event_type"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	EntityID   int64     `db:"entity_id" json:"entity_id"`
	Payload    string    `db:"payload" json:"payload"`
	OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Query filters List. Zero fields are ignored. Since may carry any offset.
type Query struct {
	Since      time.Time
	EventType  string
	EntityType string
	EntityID   int64
	Limit      uint64
}

// List returns persisted events matching q, oldest first.
func (l *EventLog) List(ctx context.Context, q Query) ([]RawEvent, error) {
	b := sq.Select("id", "event_type", "entity_type", "entity_id", "payload", "occurred_at", "created_at").
		From("events").
		OrderBy("id ASC")
	if !q.Since.IsZero() {
		// Timestamps are stored as UTC text, so the bound must be UTC too.
		b = b.Where(sq.GtOrEq{"occurred_at": q.Since.UTC()})
	}
	if q.EventType != "" {
		b = b.Where(sq.Eq{"event_type": q.EventType})
	}
	if q.EntityType != "" {
		b = b.Where(sq.Eq{"entity_type": q.EntityType, "entity_id": q.EntityID})
	}
	if q.Limit > 0 {
		b = b.Limit(q.Limit)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build events query: %w", err)
	}

	events := []RawEvent{}
	if err := l.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return events, nil
}

// Since returns all events since the given time.
func (l *EventLog) Since(ctx context.Context, t time.Time) ([]RawEvent, error) {
	return l.List(ctx, Query{Since: t})
}

// ForEntity returns all events for a specific entity.
func (l *EventLog) ForEntity(ctx context.Context, entityType string, entityID int64) ([]RawEvent, error) {
	return l.List(ctx, Query{EntityType: entityType, EntityID: entityID})
}

// Prune removes events older than the given duration.
func (l *EventLog) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	result, err := l.db.ExecContext(ctx, `DELETE FROM events WHERE occurred_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return result.RowsAffected()
}
