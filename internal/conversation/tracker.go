// Package conversation persists model leg events and rebuilds the turns of a
// call from them.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/realtime/protocol"
	"realtime-bridge/internal/store"
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

var ErrNoConversation = errors.New("no conversation attached")

const defaultTranscriptionError = "Transcription failed"

// Tracker records the events of one call. It is created per session and is
// safe for use from the session's listen loop and teardown path.
type Tracker struct {
	store  Store
	logger *observability.Logger

	mu           sync.Mutex
	conversation *store.Conversation
	turns        *TurnBuilder
}

func NewTracker(store Store, logger *observability.Logger) *Tracker {
	return &Tracker{
		store:  store,
		logger: logger,
		turns:  NewTurnBuilder(),
	}
}

// GetOrCreateConversation attaches the conversation of the call, creating it
// on first use.
func (t *Tracker) GetOrCreateConversation(ctx context.Context, call store.CallSession, agentName string) (store.Conversation, error) {
	var name interface{}
	if agentName != "" {
		name = agentName
	}

	conversation, err := t.store.GetOrCreateConversation(ctx, store.CreateConversationParams{
		CallSessionID: call.ID,
		Metadata: store.JSONB{
			"agent_name":    name,
			"phone_number":  call.CalledNumber,
			"caller_number": call.CallerNumber,
		},
	})
	if err != nil {
		t.logger.Error(ctx, "failed to get or create conversation", err)
		return store.Conversation{}, err
	}

	t.mu.Lock()
	t.conversation = &conversation
	t.mu.Unlock()

	t.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "conversation_id", Value: conversation.ID.String()},
	), "conversation attached")
	return conversation, nil
}

// Attached reports whether a conversation is being tracked.
func (t *Tracker) Attached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conversation != nil
}

// HandleEvent stores the raw event then applies the turn rules. Failures are
// logged and never returned; the call goes on without its transcript.
func (t *Tracker) HandleEvent(ctx context.Context, ev protocol.ServerEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conversation == nil {
		return
	}
	conversationID := t.conversation.ID

	if _, err := t.saveEvent(ctx, ev.Raw); err != nil {
		t.logger.Error(ctx, "failed to save realtime event", err)
	}

	var turn CompletedTurn
	switch ev.Kind {
	case protocol.KindOutputTextDelta:
		if ev.ResponseID == "" || ev.Delta == "" {
			return
		}
		t.turns.AddAssistantDelta(ev.ResponseID, ev.Delta, store.JSONB{"response_id": ev.ResponseID})
		return

	case protocol.KindOutputTextDone, protocol.KindResponseDone, protocol.KindResponseCompleted:
		if ev.ResponseID == "" {
			return
		}
		var ok bool
		turn, ok = t.turns.FinalizeAssistant(ev.ResponseID)
		if !ok {
			t.logger.Debug(observability.WithFields(ctx,
				observability.Field{Key: "response_id", Value: ev.ResponseID},
			), "no text buffered for response, skipping turn")
			return
		}

	case protocol.KindTranscriptionCompleted:
		if ev.ItemID == "" || ev.Transcript == "" {
			return
		}
		turn = t.turns.UserTurn(ev.ItemID, ev.Transcript)

	case protocol.KindTranscriptionFailed:
		if ev.ItemID == "" {
			return
		}
		msg := defaultTranscriptionError
		if ev.Error != nil && ev.Error.Message != "" {
			msg = ev.Error.Message
		}
		turn = t.turns.FailedUserTurn(ev.ItemID, msg)
		t.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "item_id", Value: ev.ItemID},
			observability.Field{Key: "transcription_error", Value: msg},
		), "input transcription failed")

	default:
		return
	}

	t.persistTurn(ctx, conversationID, turn)
}

func (t *Tracker) persistTurn(ctx context.Context, conversationID uuid.UUID, turn CompletedTurn) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "role", Value: turn.Role},
		observability.Field{Key: "source_id", Value: turn.SourceID},
	)
	_, err := t.store.CreateTurn(ctx, turn.params(conversationID))
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		t.logger.Debug(ctx, "turn already recorded")
	case err != nil:
		t.logger.Error(ctx, "failed to create turn", err)
	default:
		t.logger.Info(ctx, "turn finalized")
	}
}

// SaveEvent appends a raw model leg message to the attached conversation.
func (t *Tracker) SaveEvent(ctx context.Context, raw []byte) (store.Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saveEvent(ctx, raw)
}

func (t *Tracker) saveEvent(ctx context.Context, raw []byte) (store.Event, error) {
	if t.conversation == nil {
		return store.Event{}, ErrNoConversation
	}
	params := EventParams(raw)
	params.ConversationID = t.conversation.ID

	event, err := t.store.CreateEvent(ctx, params)
	if err != nil {
		return store.Event{}, fmt.Errorf("failed to save event %s: %w", params.EventType, err)
	}
	return event, nil
}

// EventParams extracts the indexed fields of a raw event. Fields missing from
// the event are left empty.
func EventParams(raw []byte) store.CreateEventParams {
	doc := gjson.ParseBytes(raw)

	params := store.CreateEventParams{
		EventType: doc.Get("type").String(),
		EventID:   firstString(doc, "event_id", "id"),
		Payload:   store.RawJSON(raw),
	}

	switch item := doc.Get("item"); {
	case item.IsObject():
		params.ItemID = item.Get("id").String()
		params.Role = item.Get("role").String()
	case item.Exists():
		params.ItemID = item.String()
	}
	if params.ItemID == "" {
		params.ItemID = doc.Get("item_id").String()
	}

	switch resp := doc.Get("response"); {
	case resp.IsObject():
		params.ResponseID = resp.Get("id").String()
		if params.Role == "" {
			params.Role = resp.Get("role").String()
		}
	case resp.Exists():
		params.ResponseID = resp.String()
	}
	if params.ResponseID == "" {
		params.ResponseID = doc.Get("response_id").String()
	}

	params.TextDelta = firstString(doc, "delta", "text", "transcript")

	switch errVal := doc.Get("error"); {
	case errVal.IsObject():
		params.Error = errVal.Get("message").String()
		if params.Error == "" {
			params.Error = errVal.Raw
		}
	case errVal.Exists() && errVal.Type != gjson.Null:
		params.Error = errVal.String()
	}

	return params
}

func firstString(doc gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := doc.Get(p); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

// Close stamps the conversation end time and drops unfinished buffers.
func (t *Tracker) Close(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if pending := t.turns.Pending(); pending > 0 {
		t.logger.Debug(observability.WithFields(ctx,
			observability.Field{Key: "pending_responses", Value: pending},
		), "dropping unfinished turns")
	}
	t.turns.Reset()

	if t.conversation == nil {
		return nil
	}
	id := t.conversation.ID
	t.conversation = nil

	if err := t.store.EndConversation(ctx, id); err != nil {
		t.logger.Error(ctx, "failed to end conversation", err)
		return err
	}
	return nil
}
