package session

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=session

import (
	"context"
	"realtime-bridge/internal/realtime/protocol"
	"realtime-bridge/internal/store"
)

// TelephonyConn is the caller's media stream.
type TelephonyConn interface {
	SendMedia(ctx context.Context, streamSid, payload string) error
	SendMark(ctx context.Context, streamSid, name string) error
	SendClear(ctx context.Context, streamSid string) error
	Close() error
}

// ModelConn is one open model leg. Receive is only called from the session's
// listen loop.
type ModelConn interface {
	Send(ctx context.Context, event interface{}) error
	Receive() ([]byte, error)
	Close() error
}

type ModelDialer interface {
	Dial(ctx context.Context, apiKey, model string) (ModelConn, error)
}

// DialerFunc adapts a function to ModelDialer.
type DialerFunc func(ctx context.Context, apiKey, model string) (ModelConn, error)

func (f DialerFunc) Dial(ctx context.Context, apiKey, model string) (ModelConn, error) {
	return f(ctx, apiKey, model)
}

// CallRecorder keeps the durable call record in step with the stream.
type CallRecorder interface {
	MarkConnected(ctx context.Context, sessionID, streamSID string) (store.CallSession, error)
	EndCall(ctx context.Context, sessionID, status string) error
}

// ConversationTracker persists model events and the turns built from them.
type ConversationTracker interface {
	GetOrCreateConversation(ctx context.Context, call store.CallSession, agentName string) (store.Conversation, error)
	HandleEvent(ctx context.Context, ev protocol.ServerEvent)
	Close(ctx context.Context) error
}

type CallHangup interface {
	Hangup(ctx context.Context, callSID string) error
}

// Presence mirrors live session ids outside the process.
type Presence interface {
	MarkActive(ctx context.Context, sessionID string) error
	ClearActive(ctx context.Context, sessionID string) error
}

type StreamVerifier interface {
	Verify(token, sessionID string) error
}
