package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Fixtures provides factory functions for creating test data.
// All factory methods use testify/require to fail fast on errors.
type Fixtures struct {
	t      *testing.T
	testDB *TestDB
	ctx    context.Context
}

// NewFixtures creates a new Fixtures instance for test data generation.
func NewFixtures(t *testing.T, testDB *TestDB) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:      t,
		testDB: testDB,
		ctx:    context.Background(),
	}
}

// CreateTenant creates a tenant, optionally with its own model key.
func (f *Fixtures) CreateTenant(apiKey *string) Tenant {
	f.t.Helper()
	tenant, err := f.testDB.Store.CreateTenant(f.ctx, CreateTenantParams{
		Name:         "Tenant " + uuid.NewString()[:8],
		OpenAIAPIKey: apiKey,
	})
	require.NoError(f.t, err, "failed to create test tenant")
	return tenant
}

// CreateAgent creates an agent with sensible defaults.
func (f *Fixtures) CreateAgent(tenantID uuid.UUID, opts ...func(*CreateAgentConfigParams)) AgentConfig {
	f.t.Helper()
	params := CreateAgentConfigParams{
		TenantID:                  tenantID,
		Name:                      "Ava",
		Instructions:              "You are {name}, a helpful receptionist.",
		Voice:                     "alloy",
		Modalities:                StringArray{"text", "audio"},
		Temperature:               0.8,
		MaxResponseOutputTokens:   "inf",
		TurnDetectionType:         TurnDetectionServerVAD,
		VADThreshold:              0.5,
		VADPrefixPaddingMs:        300,
		VADSilenceDurationMs:      500,
		VADEagerness:              "auto",
		InputTranscriptionEnabled: true,
		TranscriptionModel:        "whisper-1",
		Timezone:                  "UTC",
	}
	for _, fn := range opts {
		fn(&params)
	}

	agent, err := f.testDB.Store.CreateAgentConfig(f.ctx, params)
	require.NoError(f.t, err, "failed to create test agent")
	return agent
}

// CreateCall creates a call session with a random session id.
func (f *Fixtures) CreateCall(agentID *uuid.UUID) CallSession {
	f.t.Helper()
	call, err := f.testDB.Store.CreateCallSession(f.ctx, CreateCallSessionParams{
		SessionID:    uuid.NewString(),
		CallSID:      "CA" + uuid.NewString()[:8],
		AgentID:      agentID,
		CallerNumber: "+15551230000",
		CalledNumber: "+15559870000",
		Direction:    CallDirectionIncoming,
	})
	require.NoError(f.t, err, "failed to create test call")
	return call
}

// CreateConversation creates the conversation of a call.
func (f *Fixtures) CreateConversation(callID uuid.UUID) Conversation {
	f.t.Helper()
	conversation, err := f.testDB.Store.GetOrCreateConversation(f.ctx, CreateConversationParams{
		CallSessionID: callID,
		Metadata:      JSONB{"agent_name": "Ava"},
	})
	require.NoError(f.t, err, "failed to create test conversation")
	return conversation
}
