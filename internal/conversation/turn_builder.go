package conversation

import (
	"realtime-bridge/internal/store"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CompletedTurn is a finalized message ready to be persisted.
type CompletedTurn struct {
	Role        string
	SourceID    string
	Text        string
	Meta        store.JSONB
	StartedAt   time.Time
	CompletedAt time.Time
}

func (t CompletedTurn) params(conversationID uuid.UUID) store.CreateTurnParams {
	return store.CreateTurnParams{
		ConversationID: conversationID,
		Role:           t.Role,
		SourceID:       t.SourceID,
		Text:           t.Text,
		Meta:           t.Meta,
		StartedAt:      t.StartedAt,
		CompletedAt:    t.CompletedAt,
	}
}

type pendingTurn struct {
	text      strings.Builder
	meta      store.JSONB
	startedAt time.Time
}

// TurnBuilder accumulates streamed assistant text per response id. Finalizing
// consumes the buffer, so a response can only produce one turn.
type TurnBuilder struct {
	assistant map[string]*pendingTurn
	now       func() time.Time
}

func NewTurnBuilder() *TurnBuilder {
	return &TurnBuilder{
		assistant: make(map[string]*pendingTurn),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddAssistantDelta appends a text fragment to the response's buffer.
func (b *TurnBuilder) AddAssistantDelta(responseID, delta string, meta store.JSONB) {
	p, ok := b.assistant[responseID]
	if !ok {
		p = &pendingTurn{startedAt: b.now()}
		b.assistant[responseID] = p
	}
	p.text.WriteString(delta)
	if meta != nil {
		p.meta = meta
	}
}

// FinalizeAssistant pops the response's buffer. It reports false when
// nothing was buffered, including a second finalize of the same response.
func (b *TurnBuilder) FinalizeAssistant(responseID string) (CompletedTurn, bool) {
	p, ok := b.assistant[responseID]
	if !ok {
		return CompletedTurn{}, false
	}
	delete(b.assistant, responseID)
	if p.text.Len() == 0 {
		return CompletedTurn{}, false
	}

	meta := p.meta
	if meta == nil {
		meta = store.JSONB{}
	}
	meta["response_id"] = responseID
	return CompletedTurn{
		Role:        store.TurnRoleAssistant,
		SourceID:    responseID,
		Text:        p.text.String(),
		Meta:        meta,
		StartedAt:   p.startedAt,
		CompletedAt: b.now(),
	}, true
}

// UserTurn builds the turn of a completed input transcription.
func (b *TurnBuilder) UserTurn(itemID, transcript string) CompletedTurn {
	now := b.now()
	return CompletedTurn{
		Role:        store.TurnRoleUser,
		SourceID:    itemID,
		Text:        transcript,
		Meta:        store.JSONB{"item_id": itemID},
		StartedAt:   now,
		CompletedAt: now,
	}
}

// FailedUserTurn builds the empty turn recorded when transcription fails.
func (b *TurnBuilder) FailedUserTurn(itemID, errMsg string) CompletedTurn {
	now := b.now()
	return CompletedTurn{
		Role:     store.TurnRoleUser,
		SourceID: itemID,
		Meta: store.JSONB{
			"item_id":              itemID,
			"error":                errMsg,
			"transcription_failed": true,
		},
		StartedAt:   now,
		CompletedAt: now,
	}
}

// Pending is the number of responses still buffering.
func (b *TurnBuilder) Pending() int {
	return len(b.assistant)
}

// Reset drops every buffer.
func (b *TurnBuilder) Reset() {
	b.assistant = make(map[string]*pendingTurn)
}
