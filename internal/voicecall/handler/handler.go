package handler

import (
	"net/http"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/realtime/session"
	"realtime-bridge/internal/tools"

	"github.com/gorilla/websocket"
)

type Handler struct {
	calls      CallProcessor
	sessions   *session.Registry
	tools      *tools.Registry
	tokens     TokenIssuer
	publicHost string
	logger     *observability.Logger
}

// New creates the phone handlers. publicHost is the externally reachable host
// used in the media stream URL; the request host is used when it is empty.
// tokens may be nil.
func New(calls CallProcessor, sessions *session.Registry, toolRegistry *tools.Registry, tokens TokenIssuer, publicHost string, logger *observability.Logger) Handler {
	return Handler{
		calls:      calls,
		sessions:   sessions,
		tools:      toolRegistry,
		tokens:     tokens,
		publicHost: publicHost,
		logger:     logger,
	}
}

// upgrader is a shared WebSocket upgrader. Twilio does not send an Origin
// header.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
