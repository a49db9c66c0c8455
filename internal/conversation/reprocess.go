package conversation

import (
	"context"
	"errors"
	"fmt"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/store"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	audioTranscriptDelta = "response.audio_transcript.delta"
	reprocessPageSize    = 100
)

// ReprocessResult summarizes one conversation.
type ReprocessResult struct {
	SessionID      string    `json:"session_id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Responses      int       `json:"responses"`
	Created        int       `json:"created"`
	Existing       int       `json:"existing"`
	DryRun         bool      `json:"dry_run"`
}

// Reprocessor rebuilds assistant turns of audio only responses from their
// stored transcript deltas.
type Reprocessor struct {
	store  ReprocessStore
	logger *observability.Logger
}

func NewReprocessor(store ReprocessStore, logger *observability.Logger) *Reprocessor {
	return &Reprocessor{store: store, logger: logger}
}

// ReprocessSession rebuilds the turns of one call.
func (r *Reprocessor) ReprocessSession(ctx context.Context, sessionID string, dryRun bool) (ReprocessResult, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "session_id", Value: sessionID})

	call, err := r.store.GetCallSessionBySessionID(ctx, sessionID)
	if err != nil {
		return ReprocessResult{}, fmt.Errorf("failed to load call %s: %w", sessionID, err)
	}
	return r.reprocessCall(ctx, call, dryRun)
}

// ReprocessAll walks every call, newest first. Calls without a conversation
// are skipped.
func (r *Reprocessor) ReprocessAll(ctx context.Context, dryRun bool) ([]ReprocessResult, error) {
	var results []ReprocessResult
	for offset := 0; ; offset += reprocessPageSize {
		calls, err := r.store.ListCallSessions(ctx, reprocessPageSize, offset)
		if err != nil {
			return results, fmt.Errorf("failed to list calls: %w", err)
		}

		for _, call := range calls {
			callCtx := observability.WithFields(ctx, observability.Field{Key: "session_id", Value: call.SessionID})
			result, err := r.reprocessCall(callCtx, call, dryRun)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return results, err
			}
			if result.Created > 0 {
				results = append(results, result)
			}
		}

		if len(calls) < reprocessPageSize {
			return results, nil
		}
	}
}

func (r *Reprocessor) reprocessCall(ctx context.Context, call store.CallSession, dryRun bool) (ReprocessResult, error) {
	conversation, err := r.store.GetConversationByCallSession(ctx, call.ID)
	if err != nil {
		return ReprocessResult{}, err
	}

	result, err := r.ReprocessConversation(ctx, conversation, dryRun)
	result.SessionID = call.SessionID
	return result, err
}

type transcriptGroup struct {
	responseID string
	text       strings.Builder
	first      time.Time
	last       time.Time
}

// ReprocessConversation creates one assistant turn per response id found in
// the audio transcript deltas. Responses that already have a turn are left
// alone, so running it twice creates nothing new.
func (r *Reprocessor) ReprocessConversation(ctx context.Context, conversation store.Conversation, dryRun bool) (ReprocessResult, error) {
	result := ReprocessResult{ConversationID: conversation.ID, DryRun: dryRun}
	ctx = observability.WithFields(ctx, observability.Field{Key: "conversation_id", Value: conversation.ID.String()})

	events, err := r.store.ListEventsByType(ctx, conversation.ID, audioTranscriptDelta)
	if err != nil {
		return result, fmt.Errorf("failed to load transcript events: %w", err)
	}
	if len(events) == 0 {
		return result, nil
	}

	groups := groupTranscripts(events)
	result.Responses = len(groups)

	turns, err := r.store.ListTurnsByConversation(ctx, conversation.ID)
	if err != nil {
		return result, fmt.Errorf("failed to load turns: %w", err)
	}
	existing := make(map[string]bool, len(turns))
	for _, turn := range turns {
		if turn.Role == store.TurnRoleAssistant {
			existing[turn.SourceID] = true
		}
	}

	for _, g := range groups {
		if existing[g.responseID] {
			result.Existing++
			continue
		}
		if g.text.Len() == 0 {
			continue
		}

		if dryRun {
			r.logger.Info(observability.WithFields(ctx,
				observability.Field{Key: "response_id", Value: g.responseID},
				observability.Field{Key: "text_length", Value: g.text.Len()},
			), "dry run: would create assistant turn")
			result.Created++
			continue
		}

		_, err := r.store.CreateTurn(ctx, store.CreateTurnParams{
			ConversationID: conversation.ID,
			Role:           store.TurnRoleAssistant,
			SourceID:       g.responseID,
			Text:           g.text.String(),
			Meta: store.JSONB{
				"response_id":      g.responseID,
				"audio_transcript": true,
				"reprocessed":      true,
			},
			StartedAt:   g.first,
			CompletedAt: g.last,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			result.Existing++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to create turn for response %s: %w", g.responseID, err)
		}
		result.Created++
	}

	r.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "responses", Value: result.Responses},
		observability.Field{Key: "created", Value: result.Created},
		observability.Field{Key: "existing", Value: result.Existing},
		observability.Field{Key: "dry_run", Value: dryRun},
	), "conversation reprocessed")
	return result, nil
}

// groupTranscripts groups deltas by response id in first seen order.
func groupTranscripts(events []store.Event) []*transcriptGroup {
	var groups []*transcriptGroup
	byID := make(map[string]*transcriptGroup)
	for _, ev := range events {
		if ev.ResponseID == "" {
			continue
		}
		g, ok := byID[ev.ResponseID]
		if !ok {
			g = &transcriptGroup{responseID: ev.ResponseID, first: ev.CreatedAt}
			byID[ev.ResponseID] = g
			groups = append(groups, g)
		}
		g.text.WriteString(ev.TextDelta)
		if ev.CreatedAt.Before(g.first) {
			g.first = ev.CreatedAt
		}
		if ev.CreatedAt.After(g.last) {
			g.last = ev.CreatedAt
		}
	}
	return groups
}
