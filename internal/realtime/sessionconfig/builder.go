// Package sessionconfig renders the session.update document sent once per
// model leg connection.
package sessionconfig

import (
	"context"
	"errors"
	"fmt"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/store"
	"realtime-bridge/internal/tools"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AudioFormat is the only format the telephony leg carries.
const AudioFormat = "g711_ulaw"

const (
	defaultVoice              = "alloy"
	defaultTranscriptionModel = "whisper-1"
	defaultTimezone           = "UTC"
	defaultAgentName          = "Assistant"
	toolChoiceAuto            = "auto"
)

var defaultModalities = []string{"text", "audio"}

// TurnDetection is either server_vad or semantic_vad. Unset pointers are
// omitted so the two modes never carry each other's parameters.
type TurnDetection struct {
	Type              string   `json:"type"`
	Threshold         *float64 `json:"threshold,omitempty"`
	PrefixPaddingMs   *int     `json:"prefix_padding_ms,omitempty"`
	SilenceDurationMs *int     `json:"silence_duration_ms,omitempty"`
	Eagerness         string   `json:"eagerness,omitempty"`
	CreateResponse    *bool    `json:"create_response,omitempty"`
	InterruptResponse *bool    `json:"interrupt_response,omitempty"`
}

type Transcription struct {
	Model string `json:"model"`
}

// MCPTool delegates tool calls to the tenant's remote tool server.
type MCPTool struct {
	Type            string `json:"type"`
	ServerLabel     string `json:"server_label"`
	ServerURL       string `json:"server_url"`
	Authorization   string `json:"authorization"`
	RequireApproval string `json:"require_approval"`
}

// Document is the session object of a session.update message.
type Document struct {
	Modalities              []string       `json:"modalities"`
	Instructions            string         `json:"instructions"`
	Voice                   string         `json:"voice"`
	InputAudioFormat        string         `json:"input_audio_format"`
	OutputAudioFormat       string         `json:"output_audio_format"`
	Temperature             *float64       `json:"temperature,omitempty"`
	MaxResponseOutputTokens *int           `json:"max_response_output_tokens,omitempty"`
	TurnDetection           *TurnDetection `json:"turn_detection"`
	InputAudioTranscription *Transcription `json:"input_audio_transcription,omitempty"`
	Tools                   []interface{}  `json:"tools"`
	ToolChoice              string         `json:"tool_choice"`
}

// HasMCP reports whether the remote tool descriptor is advertised.
func (d Document) HasMCP() bool {
	for _, t := range d.Tools {
		if _, ok := t.(MCPTool); ok {
			return true
		}
	}
	return false
}

type Builder struct {
	registry     *tools.Registry
	mcpServerURL string
	validate     *validator.Validate
	logger       *observability.Logger
}

func NewBuilder(logger *observability.Logger, registry *tools.Registry, mcpServerURL string) *Builder {
	return &Builder{
		registry:     registry,
		mcpServerURL: mcpServerURL,
		validate:     validator.New(),
		logger:       logger,
	}
}

// Build renders the configuration for an agent. A nil agent yields the
// defaults.
func (b *Builder) Build(ctx context.Context, agent *store.AgentConfig) Document {
	if agent == nil {
		b.logger.Info(ctx, "building default session configuration")
		return b.finish(Document{
			Modalities:              append([]string(nil), defaultModalities...),
			Voice:                   defaultVoice,
			TurnDetection:           &TurnDetection{Type: store.TurnDetectionServerVAD},
			InputAudioTranscription: &Transcription{Model: defaultTranscriptionModel},
		}, defaultAgentName, defaultTimezone, "", nil)
	}

	a := b.sanitize(ctx, *agent)

	name := a.Name
	if name == "" {
		name = defaultAgentName
	}
	timezone := a.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}

	temperature := a.Temperature
	doc := Document{
		Modalities:              append([]string(nil), a.Modalities...),
		Voice:                   a.Voice,
		Temperature:             &temperature,
		MaxResponseOutputTokens: maxOutputTokens(a.MaxResponseOutputTokens),
		TurnDetection:           turnDetection(a),
	}
	if a.InputTranscriptionEnabled {
		model := a.TranscriptionModel
		if model == "" {
			model = defaultTranscriptionModel
		}
		doc.InputAudioTranscription = &Transcription{Model: model}
	}

	var mcp *MCPTool
	if integration, ok := agent.MCP(); ok && b.mcpServerURL == "" {
		b.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "agent_id", Value: a.ID.String()},
		), "agent has a remote tool integration but no server url is configured, skipping it")
	} else if ok {
		mcp = &MCPTool{
			Type:            "mcp",
			ServerLabel:     "mcp-" + integration.TenantID,
			ServerURL:       b.mcpServerURL,
			Authorization:   integration.AuthToken,
			RequireApproval: "never",
		}
		b.logger.Info(observability.WithFields(ctx,
			observability.Field{Key: "server_label", Value: mcp.ServerLabel},
			observability.Field{Key: "server_url", Value: mcp.ServerURL},
		), "advertising remote tool server")
	}

	return b.finish(doc, name, timezone, strings.ReplaceAll(a.Instructions, "{name}", name), mcp)
}

func (b *Builder) finish(doc Document, name, timezone, instructions string, mcp *MCPTool) Document {
	doc.InputAudioFormat = AudioFormat
	doc.OutputAudioFormat = AudioFormat
	doc.ToolChoice = toolChoiceAuto
	doc.Instructions = withBaseline(name, timezone, instructions)

	doc.Tools = []interface{}{}
	if b.registry != nil {
		for _, def := range b.registry.Definitions() {
			doc.Tools = append(doc.Tools, def)
		}
	}
	if mcp != nil {
		doc.Tools = append(doc.Tools, *mcp)
	}
	return doc
}

func turnDetection(a store.AgentConfig) *TurnDetection {
	yes := true
	if a.TurnDetectionType == store.TurnDetectionSemanticVAD {
		eagerness := a.VADEagerness
		if eagerness == "" {
			eagerness = "auto"
		}
		return &TurnDetection{
			Type:              store.TurnDetectionSemanticVAD,
			Eagerness:         eagerness,
			CreateResponse:    &yes,
			InterruptResponse: &yes,
		}
	}

	threshold := a.VADThreshold
	padding := a.VADPrefixPaddingMs
	silence := a.VADSilenceDurationMs
	return &TurnDetection{
		Type:              store.TurnDetectionServerVAD,
		Threshold:         &threshold,
		PrefixPaddingMs:   &padding,
		SilenceDurationMs: &silence,
		CreateResponse:    &yes,
		InterruptResponse: &yes,
	}
}

// maxOutputTokens returns nil for "inf", empty and non-numeric limits, which
// leaves the model unlimited.
func maxOutputTokens(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "inf") {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// agent fields reset when they fail validation
var fieldDefaults = map[string]func(*store.AgentConfig){
	"Voice":                func(a *store.AgentConfig) { a.Voice = defaultVoice },
	"Modalities":           func(a *store.AgentConfig) { a.Modalities = append(store.StringArray(nil), defaultModalities...) },
	"Temperature":          func(a *store.AgentConfig) { a.Temperature = 0.8 },
	"TurnDetectionType":    func(a *store.AgentConfig) { a.TurnDetectionType = store.TurnDetectionServerVAD },
	"VADThreshold":         func(a *store.AgentConfig) { a.VADThreshold = 0.5 },
	"VADPrefixPaddingMs":   func(a *store.AgentConfig) { a.VADPrefixPaddingMs = 300 },
	"VADSilenceDurationMs": func(a *store.AgentConfig) { a.VADSilenceDurationMs = 500 },
	"VADEagerness":         func(a *store.AgentConfig) { a.VADEagerness = "auto" },
}

func (b *Builder) sanitize(ctx context.Context, a store.AgentConfig) store.AgentConfig {
	err := b.validate.StructCtx(ctx, a)
	if err == nil {
		return a
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		b.logger.Error(ctx, "failed to validate agent configuration", err)
		return a
	}

	for _, fe := range fieldErrs {
		field := fe.StructField()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		reset, ok := fieldDefaults[field]
		if !ok {
			continue
		}
		b.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "agent_id", Value: a.ID.String()},
			observability.Field{Key: "field", Value: field},
			observability.Field{Key: "rule", Value: fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())},
		), "invalid agent setting, using default")
		reset(&a)
	}
	return a
}
