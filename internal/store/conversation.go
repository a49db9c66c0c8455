package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateConversationParams represents parameters for opening a conversation
type CreateConversationParams struct {
	CallSessionID uuid.UUID
	Metadata      JSONB
}

const conversationColumns = `id, call_session_id, metadata, started_at, ended_at`

// The no-op update makes RETURNING yield the existing row on conflict.
const sqlGetOrCreateConversation = `
INSERT INTO conversations (call_session_id, metadata)
VALUES ($1, $2)
ON CONFLICT (call_session_id) DO UPDATE SET call_session_id = EXCLUDED.call_session_id
RETURNING ` + conversationColumns

// GetOrCreateConversation returns the conversation of a call, creating it on first use
func (s *Store) GetOrCreateConversation(ctx context.Context, params CreateConversationParams) (Conversation, error) {
	var conversation Conversation
	err := s.db.GetContext(ctx, &conversation, sqlGetOrCreateConversation, params.CallSessionID, params.Metadata)
	if err != nil {
		s.logger.Error(ctx, "failed to get or create conversation", err)
		return Conversation{}, fmt.Errorf("failed to get or create conversation: %w", err)
	}
	return conversation, nil
}

const sqlGetConversationByCallSession = `
SELECT ` + conversationColumns + `
FROM conversations
WHERE call_session_id = $1
`

// GetConversationByCallSession retrieves the conversation of a call
func (s *Store) GetConversationByCallSession(ctx context.Context, callSessionID uuid.UUID) (Conversation, error) {
	var conversation Conversation
	err := s.db.GetContext(ctx, &conversation, sqlGetConversationByCallSession, callSessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Conversation{}, ErrNotFound
		}
		return Conversation{}, fmt.Errorf("failed to get conversation by call session: %w", err)
	}
	return conversation, nil
}

const sqlEndConversation = `
UPDATE conversations SET ended_at = NOW() WHERE id = $1 AND ended_at IS NULL
`

// EndConversation stamps the end time of a conversation once
func (s *Store) EndConversation(ctx context.Context, conversationID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, sqlEndConversation, conversationID)
	if err != nil {
		s.logger.Error(ctx, "failed to end conversation", err)
		return fmt.Errorf("failed to end conversation: %w", err)
	}
	return nil
}
