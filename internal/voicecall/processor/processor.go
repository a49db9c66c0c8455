package processor

import (
	"context"
	"errors"
	"fmt"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/store"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrCallNotFound     = errors.New("call not found")
	ErrNoAgentAvailable = errors.New("no active agent available")
)

const (
	defaultHistoryEventLimit = 500
	maxListLimit             = 100
)

type VoiceCallProcessor struct {
	store  CallStore
	logger *observability.Logger
}

func New(store CallStore, logger *observability.Logger) *VoiceCallProcessor {
	return &VoiceCallProcessor{
		store:  store,
		logger: logger,
	}
}

// AnswerCallParams are the fields of the Twilio voice webhook.
type AnswerCallParams struct {
	CallSID string
	From    string
	To      string
	AgentID string
}

// AnsweredCall is a call record and the agent that will serve it.
type AnsweredCall struct {
	Call  store.CallSession
	Agent store.AgentConfig
}

// ResolveAgent picks the agent for a call: an explicit agent id wins, then the
// agent mapped to the called number (or the first active agent of the tenant
// owning it), then any active agent.
func (p *VoiceCallProcessor) ResolveAgent(ctx context.Context, agentID, calledNumber string) (store.AgentConfig, *store.PhoneNumber, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "requested_agent_id", Value: agentID},
		observability.Field{Key: "called_number", Value: calledNumber},
	)

	if agentID != "" {
		id, err := uuid.Parse(agentID)
		if err != nil {
			p.logger.Warn(ctx, "ignoring malformed agent id")
		} else {
			agent, err := p.store.GetAgentConfigByID(ctx, id)
			switch {
			case err == nil && agent.IsActive:
				return agent, nil, nil
			case err == nil:
				p.logger.Warn(ctx, "requested agent is inactive")
			case errors.Is(err, store.ErrNotFound):
				p.logger.Warn(ctx, "requested agent not found")
			default:
				return store.AgentConfig{}, nil, fmt.Errorf("failed to load agent: %w", err)
			}
		}
	}

	var number *store.PhoneNumber
	if calledNumber != "" {
		found, err := p.store.GetActivePhoneNumber(ctx, calledNumber)
		switch {
		case err == nil:
			number = &found
			agent, ok, err := p.agentForNumber(ctx, found)
			if err != nil {
				return store.AgentConfig{}, nil, err
			}
			if ok {
				return agent, number, nil
			}
		case errors.Is(err, store.ErrNotFound):
			p.logger.Debug(ctx, "called number is not registered")
		default:
			return store.AgentConfig{}, nil, fmt.Errorf("failed to load phone number: %w", err)
		}
	}

	agent, err := p.store.GetAnyActiveAgent(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AgentConfig{}, number, ErrNoAgentAvailable
		}
		return store.AgentConfig{}, number, fmt.Errorf("failed to load fallback agent: %w", err)
	}
	p.logger.Info(observability.WithFields(ctx, observability.Field{Key: "agent_id", Value: agent.ID}),
		"using fallback agent")
	return agent, number, nil
}

func (p *VoiceCallProcessor) agentForNumber(ctx context.Context, number store.PhoneNumber) (store.AgentConfig, bool, error) {
	if number.AgentID != nil {
		agent, err := p.store.GetAgentConfigByID(ctx, *number.AgentID)
		switch {
		case err == nil && agent.IsActive:
			return agent, true, nil
		case err == nil, errors.Is(err, store.ErrNotFound):
			p.logger.Warn(ctx, "agent mapped to phone number is unavailable")
		default:
			return store.AgentConfig{}, false, fmt.Errorf("failed to load mapped agent: %w", err)
		}
	}

	agent, err := p.store.GetFirstActiveAgentForTenant(ctx, number.TenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.AgentConfig{}, false, nil
		}
		return store.AgentConfig{}, false, fmt.Errorf("failed to load tenant agent: %w", err)
	}
	return agent, true, nil
}

// AnswerCall routes the call to an agent and records it with a fresh
// session id.
func (p *VoiceCallProcessor) AnswerCall(ctx context.Context, params AnswerCallParams) (AnsweredCall, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "call_sid", Value: params.CallSID},
		observability.Field{Key: "from", Value: params.From},
		observability.Field{Key: "to", Value: params.To},
	)

	agent, number, err := p.ResolveAgent(ctx, params.AgentID, params.To)
	if err != nil {
		p.logger.Error(ctx, "failed to resolve agent", err)
		return AnsweredCall{}, err
	}

	direction, err := p.direction(ctx, agent.TenantID, params.From, params.To)
	if err != nil {
		return AnsweredCall{}, err
	}

	createParams := store.CreateCallSessionParams{
		SessionID:    uuid.New().String(),
		CallSID:      params.CallSID,
		AgentID:      &agent.ID,
		CallerNumber: params.From,
		CalledNumber: params.To,
		Direction:    direction,
	}
	if number != nil {
		createParams.PhoneNumberID = &number.ID
	}

	call, err := p.store.CreateCallSession(ctx, createParams)
	if err != nil {
		p.logger.Error(ctx, "failed to record call", err)
		return AnsweredCall{}, fmt.Errorf("failed to record call: %w", err)
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "session_id", Value: call.SessionID},
		observability.Field{Key: "agent_id", Value: agent.ID},
		observability.Field{Key: "direction", Value: direction},
	), "call answered")
	return AnsweredCall{Call: call, Agent: agent}, nil
}

// direction is incoming when the tenant owns the called number, outgoing
// when it owns the caller number and incoming otherwise.
func (p *VoiceCallProcessor) direction(ctx context.Context, tenantID uuid.UUID, from, to string) (string, error) {
	if to != "" {
		owned, err := p.store.TenantOwnsPhoneNumber(ctx, tenantID, to)
		if err != nil {
			return "", fmt.Errorf("failed to check called number: %w", err)
		}
		if owned {
			return store.CallDirectionIncoming, nil
		}
	}
	if from != "" {
		owned, err := p.store.TenantOwnsPhoneNumber(ctx, tenantID, from)
		if err != nil {
			return "", fmt.Errorf("failed to check caller number: %w", err)
		}
		if owned {
			return store.CallDirectionOutgoing, nil
		}
	}
	return store.CallDirectionIncoming, nil
}

// AgentForSession returns the agent recorded for a session. It is used when a
// media stream arrives before the session exists in memory.
func (p *VoiceCallProcessor) AgentForSession(ctx context.Context, sessionID string) (*store.AgentConfig, error) {
	call, err := p.store.GetCallSessionBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCallNotFound
		}
		return nil, fmt.Errorf("failed to load call: %w", err)
	}
	if call.AgentID == nil {
		agent, _, err := p.ResolveAgent(ctx, "", call.CalledNumber)
		if err != nil {
			return nil, err
		}
		return &agent, nil
	}

	agent, err := p.store.GetAgentConfigByID(ctx, *call.AgentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoAgentAvailable
		}
		return nil, fmt.Errorf("failed to load agent: %w", err)
	}
	return &agent, nil
}

// MarkConnected records the media stream of a call and returns the updated
// record.
func (p *VoiceCallProcessor) MarkConnected(ctx context.Context, sessionID, streamSID string) (store.CallSession, error) {
	if err := p.store.MarkCallConnected(ctx, sessionID, streamSID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.CallSession{}, ErrCallNotFound
		}
		return store.CallSession{}, fmt.Errorf("failed to mark call connected: %w", err)
	}
	call, err := p.store.GetCallSessionBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.CallSession{}, ErrCallNotFound
		}
		return store.CallSession{}, fmt.Errorf("failed to load call: %w", err)
	}
	return call, nil
}

// EndCall records the terminal status of a call. The first terminal status
// wins.
func (p *VoiceCallProcessor) EndCall(ctx context.Context, sessionID, status string) error {
	if status != store.CallStatusEnded && status != store.CallStatusError {
		return fmt.Errorf("invalid terminal status %q", status)
	}
	if err := p.store.EndCallSession(ctx, sessionID, status); err != nil {
		return fmt.Errorf("failed to end call: %w", err)
	}
	return nil
}

// statusFromCallback maps a Twilio CallStatus to a terminal status. Statuses
// that are not terminal map to "".
func statusFromCallback(callStatus string) string {
	switch strings.ToLower(callStatus) {
	case "completed":
		return store.CallStatusEnded
	case "failed", "busy", "no-answer", "canceled":
		return store.CallStatusError
	default:
		return ""
	}
}

// HandleStatusCallback applies a Twilio status callback to the call record.
// It returns the session id of a call that reached a terminal status.
func (p *VoiceCallProcessor) HandleStatusCallback(ctx context.Context, callSID, callStatus string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "call_sid", Value: callSID},
		observability.Field{Key: "call_status", Value: callStatus},
	)
	p.logger.Info(ctx, "call status callback")

	status := statusFromCallback(callStatus)
	if status == "" {
		return "", nil
	}

	call, err := p.store.GetCallSessionByCallSID(ctx, callSID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrCallNotFound
		}
		return "", fmt.Errorf("failed to load call: %w", err)
	}
	if err := p.EndCall(ctx, call.SessionID, status); err != nil {
		return "", err
	}
	return call.SessionID, nil
}

// CallHistory is a call with its transcript.
type CallHistory struct {
	Call         store.CallSession   `json:"call"`
	Conversation *store.Conversation `json:"conversation,omitempty"`
	Turns        []store.Turn        `json:"turns"`
}

func (p *VoiceCallProcessor) GetCallHistory(ctx context.Context, sessionID string) (CallHistory, error) {
	call, err := p.store.GetCallSessionBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CallHistory{}, ErrCallNotFound
		}
		return CallHistory{}, fmt.Errorf("failed to load call: %w", err)
	}

	history := CallHistory{Call: call, Turns: []store.Turn{}}
	conversation, err := p.store.GetConversationByCallSession(ctx, call.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return history, nil
		}
		return CallHistory{}, fmt.Errorf("failed to load conversation: %w", err)
	}
	history.Conversation = &conversation

	turns, err := p.store.ListTurnsByConversation(ctx, conversation.ID)
	if err != nil {
		return CallHistory{}, fmt.Errorf("failed to load turns: %w", err)
	}
	if turns != nil {
		history.Turns = turns
	}
	return history, nil
}

// GetCallEvents returns the raw model events stored for a call.
func (p *VoiceCallProcessor) GetCallEvents(ctx context.Context, sessionID string, limit, offset int) ([]store.Event, error) {
	if limit <= 0 {
		limit = defaultHistoryEventLimit
	}
	if offset < 0 {
		offset = 0
	}

	call, err := p.store.GetCallSessionBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCallNotFound
		}
		return nil, fmt.Errorf("failed to load call: %w", err)
	}
	conversation, err := p.store.GetConversationByCallSession(ctx, call.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []store.Event{}, nil
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	events, err := p.store.ListEventsByConversation(ctx, conversation.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	if events == nil {
		events = []store.Event{}
	}
	return events, nil
}

func (p *VoiceCallProcessor) ListCalls(ctx context.Context, limit, offset int) ([]store.CallSession, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	calls, err := p.store.ListCallSessions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}
	if calls == nil {
		calls = []store.CallSession{}
	}
	return calls, nil
}
