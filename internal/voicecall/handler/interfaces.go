package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=handler

import (
	"context"
	"realtime-bridge/internal/store"
	"realtime-bridge/internal/voicecall/processor"
)

// CallProcessor is the call routing and history surface used by the phone
// endpoints.
type CallProcessor interface {
	AnswerCall(ctx context.Context, params processor.AnswerCallParams) (processor.AnsweredCall, error)
	AgentForSession(ctx context.Context, sessionID string) (*store.AgentConfig, error)
	HandleStatusCallback(ctx context.Context, callSID, callStatus string) (string, error)
	GetCallHistory(ctx context.Context, sessionID string) (processor.CallHistory, error)
	GetCallEvents(ctx context.Context, sessionID string, limit, offset int) ([]store.Event, error)
	ListCalls(ctx context.Context, limit, offset int) ([]store.CallSession, error)
}

// TokenIssuer signs the token handed to the media stream.
type TokenIssuer interface {
	Enabled() bool
	Issue(sessionID, callSID string) (string, error)
}
