package conversation

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=conversation

import (
	"context"
	"realtime-bridge/internal/store"

	"github.com/google/uuid"
)

// Store is the persistence the live tracker writes through.
type Store interface {
	GetOrCreateConversation(ctx context.Context, params store.CreateConversationParams) (store.Conversation, error)
	EndConversation(ctx context.Context, conversationID uuid.UUID) error
	CreateEvent(ctx context.Context, params store.CreateEventParams) (store.Event, error)
	CreateTurn(ctx context.Context, params store.CreateTurnParams) (store.Turn, error)
}

// ReprocessStore is the persistence used to rebuild turns from stored events.
type ReprocessStore interface {
	GetCallSessionBySessionID(ctx context.Context, sessionID string) (store.CallSession, error)
	ListCallSessions(ctx context.Context, limit, offset int) ([]store.CallSession, error)
	GetConversationByCallSession(ctx context.Context, callSessionID uuid.UUID) (store.Conversation, error)
	ListEventsByType(ctx context.Context, conversationID uuid.UUID, eventType string) ([]store.Event, error)
	ListTurnsByConversation(ctx context.Context, conversationID uuid.UUID) ([]store.Turn, error)
	CreateTurn(ctx context.Context, params store.CreateTurnParams) (store.Turn, error)
}
