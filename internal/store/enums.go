package store

// Call session ENUMs
const (
	CallStatusStarted   = "started"
	CallStatusConnected = "connected"
	CallStatusEnded     = "ended"
	CallStatusError     = "error"
)

const (
	CallDirectionIncoming = "incoming"
	CallDirectionOutgoing = "outgoing"
)

// Turn ENUMs
const (
	TurnRoleUser      = "user"
	TurnRoleAssistant = "assistant"
)

// Agent turn detection ENUMs
const (
	TurnDetectionServerVAD   = "server_vad"
	TurnDetectionSemanticVAD = "semantic_vad"
)
