package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateTenantParams represents parameters for creating a tenant
type CreateTenantParams struct {
	Name         string
	OpenAIAPIKey *string
}

// CreateAgentConfigParams represents parameters for creating an agent
type CreateAgentConfigParams struct {
	TenantID                  uuid.UUID
	Name                      string
	Instructions              string
	Voice                     string
	Model                     *string
	Modalities                StringArray
	Temperature               float64
	MaxResponseOutputTokens   string
	TurnDetectionType         string
	VADThreshold              float64
	VADPrefixPaddingMs        int
	VADSilenceDurationMs      int
	VADEagerness              string
	InputTranscriptionEnabled bool
	TranscriptionModel        string
	MCPTenantID               *string
	MCPAuthToken              *string
	Timezone                  string
	IdleTimeoutSeconds        *int
}

const sqlCreateTenant = `
INSERT INTO tenants (name, openai_api_key)
VALUES ($1, $2)
RETURNING id, name, openai_api_key, created_at, updated_at
`

// CreateTenant creates a new tenant
func (s *Store) CreateTenant(ctx context.Context, params CreateTenantParams) (Tenant, error) {
	var tenant Tenant
	err := s.db.GetContext(ctx, &tenant, sqlCreateTenant, params.Name, params.OpenAIAPIKey)
	if err != nil {
		return Tenant{}, fmt.Errorf("failed to create tenant: %w", err)
	}
	return tenant, nil
}

const agentColumns = `
a.id, a.tenant_id, a.name, a.instructions, a.voice, a.model, a.modalities, a.temperature,
a.max_response_output_tokens, a.input_audio_format, a.output_audio_format, a.turn_detection_type,
a.vad_threshold, a.vad_prefix_padding_ms, a.vad_silence_duration_ms, a.vad_eagerness,
a.input_transcription_enabled, a.transcription_model, a.mcp_tenant_id, a.mcp_auth_token,
a.timezone, a.idle_timeout_seconds, a.is_active, t.openai_api_key, a.created_at, a.updated_at`

const sqlCreateAgentConfig = `
WITH inserted AS (
	INSERT INTO agent_configurations (
		tenant_id, name, instructions, voice, model, modalities, temperature, max_response_output_tokens,
		turn_detection_type, vad_threshold, vad_prefix_padding_ms, vad_silence_duration_ms, vad_eagerness,
		input_transcription_enabled, transcription_model, mcp_tenant_id, mcp_auth_token, timezone, idle_timeout_seconds
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	RETURNING *
)
SELECT ` + agentColumns + `
FROM inserted a
JOIN tenants t ON t.id = a.tenant_id
`

// CreateAgentConfig creates a new agent for a tenant
func (s *Store) CreateAgentConfig(ctx context.Context, params CreateAgentConfigParams) (AgentConfig, error) {
	var agent AgentConfig
	err := s.db.GetContext(ctx, &agent, sqlCreateAgentConfig,
		params.TenantID,
		params.Name,
		params.Instructions,
		params.Voice,
		params.Model,
		params.Modalities,
		params.Temperature,
		params.MaxResponseOutputTokens,
		params.TurnDetectionType,
		params.VADThreshold,
		params.VADPrefixPaddingMs,
		params.VADSilenceDurationMs,
		params.VADEagerness,
		params.InputTranscriptionEnabled,
		params.TranscriptionModel,
		params.MCPTenantID,
		params.MCPAuthToken,
		params.Timezone,
		params.IdleTimeoutSeconds)
	if err != nil {
		return AgentConfig{}, fmt.Errorf("failed to create agent config: %w", err)
	}
	return agent, nil
}

const sqlGetAgentConfigByID = `
SELECT ` + agentColumns + `
FROM agent_configurations a
JOIN tenants t ON t.id = a.tenant_id
WHERE a.id = $1
`

// GetAgentConfigByID retrieves an agent with its tenant credentials
func (s *Store) GetAgentConfigByID(ctx context.Context, agentID uuid.UUID) (AgentConfig, error) {
	var agent AgentConfig
	err := s.db.GetContext(ctx, &agent, sqlGetAgentConfigByID, agentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AgentConfig{}, ErrNotFound
		}
		return AgentConfig{}, fmt.Errorf("failed to get agent config by id: %w", err)
	}
	return agent, nil
}

const sqlGetFirstActiveAgentForTenant = `
SELECT ` + agentColumns + `
FROM agent_configurations a
JOIN tenants t ON t.id = a.tenant_id
WHERE a.tenant_id = $1 AND a.is_active = TRUE
ORDER BY a.created_at ASC
LIMIT 1
`

// GetFirstActiveAgentForTenant retrieves the oldest active agent of a tenant
func (s *Store) GetFirstActiveAgentForTenant(ctx context.Context, tenantID uuid.UUID) (AgentConfig, error) {
	var agent AgentConfig
	err := s.db.GetContext(ctx, &agent, sqlGetFirstActiveAgentForTenant, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AgentConfig{}, ErrNotFound
		}
		return AgentConfig{}, fmt.Errorf("failed to get active agent for tenant: %w", err)
	}
	return agent, nil
}

const sqlGetAnyActiveAgent = `
SELECT ` + agentColumns + `
FROM agent_configurations a
JOIN tenants t ON t.id = a.tenant_id
WHERE a.is_active = TRUE
ORDER BY a.created_at ASC
LIMIT 1
`

// GetAnyActiveAgent retrieves the oldest active agent across all tenants
func (s *Store) GetAnyActiveAgent(ctx context.Context) (AgentConfig, error) {
	var agent AgentConfig
	err := s.db.GetContext(ctx, &agent, sqlGetAnyActiveAgent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AgentConfig{}, ErrNotFound
		}
		return AgentConfig{}, fmt.Errorf("failed to get any active agent: %w", err)
	}
	return agent, nil
}
