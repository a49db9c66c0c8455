package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"realtime-bridge/internal/store"

	"github.com/google/uuid"
)

// CallStore is the persistence the call processor relies on.
type CallStore interface {
	GetAgentConfigByID(ctx context.Context, agentID uuid.UUID) (store.AgentConfig, error)
	GetFirstActiveAgentForTenant(ctx context.Context, tenantID uuid.UUID) (store.AgentConfig, error)
	GetAnyActiveAgent(ctx context.Context) (store.AgentConfig, error)
	GetActivePhoneNumber(ctx context.Context, number string) (store.PhoneNumber, error)
	TenantOwnsPhoneNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error)
	CreateCallSession(ctx context.Context, params store.CreateCallSessionParams) (store.CallSession, error)
	GetCallSessionBySessionID(ctx context.Context, sessionID string) (store.CallSession, error)
	GetCallSessionByCallSID(ctx context.Context, callSID string) (store.CallSession, error)
	MarkCallConnected(ctx context.Context, sessionID, streamSID string) error
	EndCallSession(ctx context.Context, sessionID, status string) error
	ListCallSessions(ctx context.Context, limit, offset int) ([]store.CallSession, error)
	GetConversationByCallSession(ctx context.Context, callSessionID uuid.UUID) (store.Conversation, error)
	ListTurnsByConversation(ctx context.Context, conversationID uuid.UUID) ([]store.Turn, error)
	ListEventsByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]store.Event, error)
}
