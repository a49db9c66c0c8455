package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateTurnParams represents a finalized message to record
type CreateTurnParams struct {
	ConversationID uuid.UUID
	Role           string
	SourceID       string
	Text           string
	Meta           JSONB
	StartedAt      time.Time
	CompletedAt    time.Time
}

const turnColumns = `id, conversation_id, role, source_id, text, meta, started_at, completed_at`

const sqlCreateTurn = `
INSERT INTO turns (conversation_id, role, source_id, text, meta, started_at, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (conversation_id, role, source_id) DO NOTHING
RETURNING ` + turnColumns

// CreateTurn records a turn. A second turn for the same (conversation, role,
// source id) is rejected with ErrAlreadyExists.
func (s *Store) CreateTurn(ctx context.Context, params CreateTurnParams) (Turn, error) {
	startedAt := params.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	completedAt := params.CompletedAt
	if completedAt.IsZero() {
		completedAt = startedAt
	}

	var turn Turn
	err := s.db.GetContext(ctx, &turn, sqlCreateTurn,
		params.ConversationID,
		params.Role,
		params.SourceID,
		params.Text,
		params.Meta,
		startedAt,
		completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Turn{}, ErrAlreadyExists
		}
		return Turn{}, fmt.Errorf("failed to create turn: %w", err)
	}
	return turn, nil
}

const sqlListTurnsByConversation = `
SELECT ` + turnColumns + `
FROM turns
WHERE conversation_id = $1
ORDER BY started_at ASC
`

// ListTurnsByConversation lists the turns of a conversation in order
func (s *Store) ListTurnsByConversation(ctx context.Context, conversationID uuid.UUID) ([]Turn, error) {
	turns := []Turn{}
	err := s.db.SelectContext(ctx, &turns, sqlListTurnsByConversation, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	return turns, nil
}
