package protocol

// Outbound client message types.
const (
	TypeSessionUpdate        = "session.update"
	TypeInputAudioAppend     = "input_audio_buffer.append"
	TypeConversationItem     = "conversation.item.create"
	TypeResponseCreate       = "response.create"
	TypeConversationTruncate = "conversation.item.truncate"
)

// SessionUpdate carries the session configuration document.
type SessionUpdate struct {
	Type    string      `json:"type"`
	Session interface{} `json:"session"`
}

func NewSessionUpdate(session interface{}) SessionUpdate {
	return SessionUpdate{Type: TypeSessionUpdate, Session: session}
}

// InputAudioAppend forwards one caller audio frame.
type InputAudioAppend struct {
	Type  string `json:"type"`
	Audio string `json:"audio"`
}

func NewInputAudioAppend(payload string) InputAudioAppend {
	return InputAudioAppend{Type: TypeInputAudioAppend, Audio: payload}
}

// ContentPart is one part of a message item.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ConversationItem is an item added to the conversation by the bridge.
type ConversationItem struct {
	Type    string        `json:"type"`
	Role    string        `json:"role,omitempty"`
	Content []ContentPart `json:"content,omitempty"`
	CallID  string        `json:"call_id,omitempty"`
	Output  string        `json:"output,omitempty"`
}

// ConversationItemCreate adds an item to the conversation.
type ConversationItemCreate struct {
	Type string           `json:"type"`
	Item ConversationItem `json:"item"`
}

// NewUserText builds a user authored text message.
func NewUserText(text string) ConversationItemCreate {
	return ConversationItemCreate{
		Type: TypeConversationItem,
		Item: ConversationItem{
			Type:    "message",
			Role:    "user",
			Content: []ContentPart{{Type: "input_text", Text: text}},
		},
	}
}

// NewFunctionCallOutput attaches a tool result to a function call.
func NewFunctionCallOutput(callID, output string) ConversationItemCreate {
	return ConversationItemCreate{
		Type: TypeConversationItem,
		Item: ConversationItem{
			Type:   "function_call_output",
			CallID: callID,
			Output: output,
		},
	}
}

// ResponseOptions are the per response overrides of a generation request.
type ResponseOptions struct {
	Modalities   []string `json:"modalities,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// ResponseCreate asks the model to generate a response.
type ResponseCreate struct {
	Type     string           `json:"type"`
	Response *ResponseOptions `json:"response,omitempty"`
}

// NewResponseCreate builds a generation request with optional instructions.
func NewResponseCreate(instructions string) ResponseCreate {
	if instructions == "" {
		return ResponseCreate{Type: TypeResponseCreate}
	}
	return ResponseCreate{Type: TypeResponseCreate, Response: &ResponseOptions{Instructions: instructions}}
}

// NewResponseCreateWithModalities builds a generation request restricted to modalities.
func NewResponseCreateWithModalities(modalities ...string) ResponseCreate {
	return ResponseCreate{Type: TypeResponseCreate, Response: &ResponseOptions{Modalities: modalities}}
}

// NewSpokenResponse builds a generation request that is voiced to the caller
// with the given instructions.
func NewSpokenResponse(instructions string) ResponseCreate {
	return ResponseCreate{
		Type: TypeResponseCreate,
		Response: &ResponseOptions{
			Modalities:   []string{"audio", "text"},
			Instructions: instructions,
		},
	}
}

// ConversationItemTruncate cuts an assistant item at the played offset.
type ConversationItemTruncate struct {
	Type         string `json:"type"`
	ItemID       string `json:"item_id"`
	ContentIndex int    `json:"content_index"`
	AudioEndMs   int64  `json:"audio_end_ms"`
}

func NewTruncate(itemID string, audioEndMs int64) ConversationItemTruncate {
	return ConversationItemTruncate{
		Type:         TypeConversationTruncate,
		ItemID:       itemID,
		ContentIndex: 0,
		AudioEndMs:   audioEndMs,
	}
}
