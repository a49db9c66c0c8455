// Package protocol decodes model leg server events and builds client messages.
package protocol

import (
	"errors"

	"github.com/tidwall/gjson"
)

var ErrMalformedEvent = errors.New("malformed realtime event")

// EventKind is the closed set of server events the bridge reacts to.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindError
	KindSessionCreated
	KindSessionUpdated
	KindSpeechStarted
	KindAudioDelta
	KindFunctionCallArgumentsDelta
	KindFunctionCallArgumentsDone
	KindMCPCallArgumentsDelta
	KindMCPCallArgumentsDone
	KindMCPCallInProgress
	KindMCPCallCompleted
	KindMCPCallFailed
	KindOutputTextDelta
	KindOutputTextDone
	KindResponseDone
	KindResponseCompleted
	KindTranscriptionCompleted
	KindTranscriptionFailed
	KindOutputItemDone
	KindItemCreated
)

var eventTypes = map[EventKind]string{
	KindError:                      "error",
	KindSessionCreated:             "session.created",
	KindSessionUpdated:             "session.updated",
	KindSpeechStarted:              "input_audio_buffer.speech_started",
	KindAudioDelta:                 "response.audio.delta",
	KindFunctionCallArgumentsDelta: "response.function_call_arguments.delta",
	KindFunctionCallArgumentsDone:  "response.function_call_arguments.done",
	KindMCPCallArgumentsDelta:      "response.mcp_call_arguments.delta",
	KindMCPCallArgumentsDone:       "response.mcp_call_arguments.done",
	KindMCPCallInProgress:          "response.mcp_call.in_progress",
	KindMCPCallCompleted:           "response.mcp_call.completed",
	KindMCPCallFailed:              "response.mcp_call.failed",
	KindOutputTextDelta:            "response.output_text.delta",
	KindOutputTextDone:             "response.output_text.done",
	KindResponseDone:               "response.done",
	KindResponseCompleted:          "response.completed",
	KindTranscriptionCompleted:     "conversation.item.input_audio_transcription.completed",
	KindTranscriptionFailed:        "conversation.item.input_audio_transcription.failed",
	KindOutputItemDone:             "response.output_item.done",
	KindItemCreated:                "conversation.item.create",
}

var kindsByType = func() map[string]EventKind {
	m := make(map[string]EventKind, len(eventTypes)+1)
	for kind, name := range eventTypes {
		m[name] = kind
	}
	m["conversation.item.created"] = KindItemCreated
	return m
}()

func (k EventKind) String() string {
	if name, ok := eventTypes[k]; ok {
		return name
	}
	return "unknown"
}

// Item is the conversation item carried by item level events.
type Item struct {
	ID        string
	Type      string
	Role      string
	Name      string
	CallID    string
	Arguments string
}

// Error is the error object of error and failure events.
type Error struct {
	Type    string
	Code    string
	Message string
}

// ServerEvent is one decoded model leg message. Fields that do not apply to
// the event kind are left empty.
type ServerEvent struct {
	Kind       EventKind
	Type       string
	EventID    string
	ItemID     string
	CallID     string
	Name       string
	ResponseID string
	Delta      string
	Arguments  string
	Transcript string
	Item       *Item
	Error      *Error
	Raw        []byte
}

// Decode parses a raw model leg message. Unrecognized types decode to
// KindUnknown; only syntactically invalid messages are rejected.
func Decode(raw []byte) (ServerEvent, error) {
	if !gjson.ValidBytes(raw) {
		return ServerEvent{}, ErrMalformedEvent
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return ServerEvent{}, ErrMalformedEvent
	}

	ev := ServerEvent{
		Type:       doc.Get("type").String(),
		EventID:    doc.Get("event_id").String(),
		ItemID:     doc.Get("item_id").String(),
		CallID:     doc.Get("call_id").String(),
		Name:       doc.Get("name").String(),
		Delta:      doc.Get("delta").String(),
		Arguments:  doc.Get("arguments").String(),
		Transcript: doc.Get("transcript").String(),
		ResponseID: ResponseID(doc),
		Raw:        raw,
	}
	ev.Kind = kindsByType[ev.Type]

	if item := doc.Get("item"); item.IsObject() {
		ev.Item = &Item{
			ID:        item.Get("id").String(),
			Type:      item.Get("type").String(),
			Role:      item.Get("role").String(),
			Name:      item.Get("name").String(),
			CallID:    item.Get("call_id").String(),
			Arguments: item.Get("arguments").String(),
		}
	}
	ev.Error = decodeError(doc.Get("error"))

	return ev, nil
}

// ResponseID reads the response id from either a top level response_id or a
// nested response object.
func ResponseID(doc gjson.Result) string {
	if resp := doc.Get("response"); resp.IsObject() {
		if id := resp.Get("id").String(); id != "" {
			return id
		}
	}
	return doc.Get("response_id").String()
}

func decodeError(v gjson.Result) *Error {
	switch {
	case v.IsObject():
		return &Error{
			Type:    v.Get("type").String(),
			Code:    v.Get("code").String(),
			Message: v.Get("message").String(),
		}
	case v.Type == gjson.String && v.String() != "":
		return &Error{Message: v.String()}
	}
	return nil
}
