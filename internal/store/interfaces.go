package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Storer defines all public methods available on the Store
type Storer interface {
	// Database
	DB() *sqlx.DB
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error

	// Tenant and agent operations
	CreateTenant(ctx context.Context, params CreateTenantParams) (Tenant, error)
	CreateAgentConfig(ctx context.Context, params CreateAgentConfigParams) (AgentConfig, error)
	GetAgentConfigByID(ctx context.Context, agentID uuid.UUID) (AgentConfig, error)
	GetFirstActiveAgentForTenant(ctx context.Context, tenantID uuid.UUID) (AgentConfig, error)
	GetAnyActiveAgent(ctx context.Context) (AgentConfig, error)

	// Phone number operations
	CreatePhoneNumber(ctx context.Context, params CreatePhoneNumberParams) (PhoneNumber, error)
	GetActivePhoneNumber(ctx context.Context, number string) (PhoneNumber, error)
	TenantOwnsPhoneNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error)

	// Call session operations
	CreateCallSession(ctx context.Context, params CreateCallSessionParams) (CallSession, error)
	GetCallSessionBySessionID(ctx context.Context, sessionID string) (CallSession, error)
	GetCallSessionByCallSID(ctx context.Context, callSID string) (CallSession, error)
	MarkCallConnected(ctx context.Context, sessionID, streamSID string) error
	EndCallSession(ctx context.Context, sessionID, status string) error
	ListCallSessions(ctx context.Context, limit, offset int) ([]CallSession, error)

	// Conversation operations
	GetOrCreateConversation(ctx context.Context, params CreateConversationParams) (Conversation, error)
	GetConversationByCallSession(ctx context.Context, callSessionID uuid.UUID) (Conversation, error)
	EndConversation(ctx context.Context, conversationID uuid.UUID) error

	// Turn and event operations
	CreateTurn(ctx context.Context, params CreateTurnParams) (Turn, error)
	ListTurnsByConversation(ctx context.Context, conversationID uuid.UUID) ([]Turn, error)
	CreateEvent(ctx context.Context, params CreateEventParams) (Event, error)
	ListEventsByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]Event, error)
	ListEventsByType(ctx context.Context, conversationID uuid.UUID, eventType string) ([]Event, error)
}

var _ Storer = (*Store)(nil)
