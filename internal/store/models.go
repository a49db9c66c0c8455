package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JSONB is a custom type for JSONB fields
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface for JSONB
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface for JSONB
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for JSONB")
	}

	// Handle empty or null JSON
	if len(bytes) == 0 || string(bytes) == "null" {
		*j = make(JSONB)
		return nil
	}

	result := make(JSONB)
	err := json.Unmarshal(bytes, &result)
	if err != nil {
		return err
	}
	*j = result
	return nil
}

// RawJSON stores an arbitrary JSON document (object or otherwise) verbatim.
type RawJSON json.RawMessage

// Value implements the driver.Valuer interface for RawJSON
func (r RawJSON) Value() (driver.Value, error) {
	if len(r) == 0 {
		return []byte("{}"), nil
	}
	return []byte(r), nil
}

// Scan implements the sql.Scanner interface for RawJSON
func (r *RawJSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = nil
	case []byte:
		*r = append((*r)[:0], v...)
	case string:
		*r = RawJSON(v)
	default:
		return errors.New("incompatible type for RawJSON")
	}
	return nil
}

// MarshalJSON keeps the stored document as-is when rendering API responses.
func (r RawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return []byte(r), nil
}

// StringArray is a custom type for PostgreSQL text[] arrays
type StringArray []string

// Value implements the driver.Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	if len(a) == 0 {
		return "{}", nil
	}
	// PostgreSQL array format: {item1,item2,item3}
	return "{" + strings.Join(a, ",") + "}", nil
}

// Scan implements the sql.Scanner interface for StringArray
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var str string
	switch v := value.(type) {
	case []byte:
		str = string(v)
	case string:
		str = v
	default:
		return fmt.Errorf("unsupported type for StringArray: %T", value)
	}

	str = strings.Trim(str, "{}")
	if str == "" {
		*a = []string{}
		return nil
	}

	*a = strings.Split(str, ",")
	return nil
}

// Tenant owns agents and phone numbers and may carry its own model credentials.
type Tenant struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	OpenAIAPIKey *string   `db:"openai_api_key" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// AgentConfig is the voice agent a call is routed to. It is read-only for the
// lifetime of a call.
type AgentConfig struct {
	ID                        uuid.UUID   `db:"id" json:"id"`
	TenantID                  uuid.UUID   `db:"tenant_id" json:"tenant_id"`
	Name                      string      `db:"name" json:"name"`
	Instructions              string      `db:"instructions" json:"instructions"`
	Voice                     string      `db:"voice" json:"voice" validate:"required"`
	Model                     *string     `db:"model" json:"model,omitempty"`
	Modalities                StringArray `db:"modalities" json:"modalities" validate:"required,min=1,dive,oneof=text audio"`
	Temperature               float64     `db:"temperature" json:"temperature" validate:"gte=0.6,lte=1.2"`
	MaxResponseOutputTokens   string      `db:"max_response_output_tokens" json:"max_response_output_tokens"`
	InputAudioFormat          string      `db:"input_audio_format" json:"input_audio_format"`
	OutputAudioFormat         string      `db:"output_audio_format" json:"output_audio_format"`
	TurnDetectionType         string      `db:"turn_detection_type" json:"turn_detection_type" validate:"oneof=server_vad semantic_vad"`
	VADThreshold              float64     `db:"vad_threshold" json:"vad_threshold" validate:"gte=0,lte=1"`
	VADPrefixPaddingMs        int         `db:"vad_prefix_padding_ms" json:"vad_prefix_padding_ms" validate:"gte=0"`
	VADSilenceDurationMs      int         `db:"vad_silence_duration_ms" json:"vad_silence_duration_ms" validate:"gte=0"`
	VADEagerness              string      `db:"vad_eagerness" json:"vad_eagerness" validate:"omitempty,oneof=low medium high auto"`
	InputTranscriptionEnabled bool        `db:"input_transcription_enabled" json:"input_transcription_enabled"`
	TranscriptionModel        string      `db:"transcription_model" json:"transcription_model"`
	MCPTenantID               *string     `db:"mcp_tenant_id" json:"mcp_tenant_id,omitempty"`
	MCPAuthToken              *string     `db:"mcp_auth_token" json:"-"`
	Timezone                  string      `db:"timezone" json:"timezone"`
	IdleTimeoutSeconds        *int        `db:"idle_timeout_seconds" json:"idle_timeout_seconds,omitempty"`
	IsActive                  bool        `db:"is_active" json:"is_active"`
	OpenAIAPIKey              *string     `db:"openai_api_key" json:"-"`
	CreatedAt                 time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt                 time.Time   `db:"updated_at" json:"updated_at"`
}

// MCPIntegration is the remote tool server binding of an agent.
type MCPIntegration struct {
	TenantID  string
	AuthToken string
}

// MCP returns the agent's remote tool integration. It is only present when
// both the tenant id and the token are set.
func (a *AgentConfig) MCP() (MCPIntegration, bool) {
	if a == nil || a.MCPTenantID == nil || a.MCPAuthToken == nil {
		return MCPIntegration{}, false
	}
	if *a.MCPTenantID == "" || *a.MCPAuthToken == "" {
		return MCPIntegration{}, false
	}
	return MCPIntegration{TenantID: *a.MCPTenantID, AuthToken: *a.MCPAuthToken}, true
}

// PhoneNumber is a number owned by a tenant, optionally pinned to an agent.
type PhoneNumber struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	TenantID  uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	Number    string     `db:"number" json:"number"`
	AgentID   *uuid.UUID `db:"agent_id" json:"agent_id,omitempty"`
	IsActive  bool       `db:"is_active" json:"is_active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// CallSession is the durable record of one phone call.
type CallSession struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	SessionID       string     `db:"session_id" json:"session_id"`
	CallSID         string     `db:"call_sid" json:"call_sid"`
	StreamSID       *string    `db:"stream_sid" json:"stream_sid,omitempty"`
	AgentID         *uuid.UUID `db:"agent_id" json:"agent_id,omitempty"`
	PhoneNumberID   *uuid.UUID `db:"phone_number_id" json:"phone_number_id,omitempty"`
	CallerNumber    string     `db:"caller_number" json:"caller_number"`
	CalledNumber    string     `db:"called_number" json:"called_number"`
	Direction       string     `db:"direction" json:"direction"`
	Status          string     `db:"status" json:"status"`
	StartedAt       time.Time  `db:"started_at" json:"started_at"`
	ConnectedAt     *time.Time `db:"connected_at" json:"connected_at,omitempty"`
	EndedAt         *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	DurationSeconds *int       `db:"duration_seconds" json:"duration_seconds,omitempty"`
}

// Conversation is the transcript container of a call.
type Conversation struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	CallSessionID uuid.UUID  `db:"call_session_id" json:"call_session_id"`
	Metadata      JSONB      `db:"metadata" json:"metadata"`
	StartedAt     time.Time  `db:"started_at" json:"started_at"`
	EndedAt       *time.Time `db:"ended_at" json:"ended_at,omitempty"`
}

// Event is one raw model message. Events are never updated.
type Event struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ConversationID uuid.UUID `db:"conversation_id" json:"conversation_id"`
	EventType      string    `db:"event_type" json:"event_type"`
	EventID        string    `db:"event_id" json:"event_id"`
	ItemID         string    `db:"item_id" json:"item_id"`
	ResponseID     string    `db:"response_id" json:"response_id"`
	Role           string    `db:"role" json:"role"`
	TextDelta      string    `db:"text_delta" json:"text_delta"`
	Error          string    `db:"error" json:"error"`
	Payload        RawJSON   `db:"payload" json:"payload"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Turn is one finalized message of a conversation. SourceID is the response
// id for assistant turns and the item id for user turns.
type Turn struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	ConversationID uuid.UUID  `db:"conversation_id" json:"conversation_id"`
	Role           string     `db:"role" json:"role"`
	SourceID       string     `db:"source_id" json:"source_id"`
	Text           string     `db:"text" json:"text"`
	Meta           JSONB      `db:"meta" json:"meta"`
	StartedAt      time.Time  `db:"started_at" json:"started_at"`
	CompletedAt    *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}
