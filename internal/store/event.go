package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateEventParams represents one raw model message to record
type CreateEventParams struct {
	ConversationID uuid.UUID
	EventType      string
	EventID        string
	ItemID         string
	ResponseID     string
	Role           string
	TextDelta      string
	Error          string
	Payload        RawJSON
}

const eventColumns = `
id, conversation_id, event_type, event_id, item_id, response_id, role, text_delta, error, payload, created_at`

const sqlCreateEvent = `
INSERT INTO events (conversation_id, event_type, event_id, item_id, response_id, role, text_delta, error, payload)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + eventColumns

// CreateEvent appends an event to a conversation
func (s *Store) CreateEvent(ctx context.Context, params CreateEventParams) (Event, error) {
	var event Event
	err := s.db.GetContext(ctx, &event, sqlCreateEvent,
		params.ConversationID,
		params.EventType,
		params.EventID,
		params.ItemID,
		params.ResponseID,
		params.Role,
		params.TextDelta,
		params.Error,
		params.Payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

const sqlListEventsByConversation = `
SELECT ` + eventColumns + `
FROM events
WHERE conversation_id = $1
ORDER BY created_at ASC
LIMIT $2 OFFSET $3
`

// ListEventsByConversation lists events of a conversation in arrival order
func (s *Store) ListEventsByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]Event, error) {
	events := []Event{}
	err := s.db.SelectContext(ctx, &events, sqlListEventsByConversation, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

const sqlListEventsByType = `
SELECT ` + eventColumns + `
FROM events
WHERE conversation_id = $1 AND event_type = $2
ORDER BY created_at ASC
`

// ListEventsByType lists events of one type in arrival order
func (s *Store) ListEventsByType(ctx context.Context, conversationID uuid.UUID, eventType string) ([]Event, error) {
	events := []Event{}
	err := s.db.SelectContext(ctx, &events, sqlListEventsByType, conversationID, eventType)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by type: %w", err)
	}
	return events, nil
}
