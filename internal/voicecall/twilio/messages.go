// Package twilio speaks the Twilio Media Streams websocket protocol.
package twilio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedFrame = errors.New("malformed media stream frame")

const (
	EventConnected = "connected"
	EventStart     = "start"
	EventMedia     = "media"
	EventStop      = "stop"
	EventMark      = "mark"
	EventDTMF      = "dtmf"
	EventClear     = "clear"
)

// ResponseMarkName labels the marks sent after every outbound audio chunk.
const ResponseMarkName = "responsePart"

// Millis is a media timestamp in milliseconds. Twilio sends it as a string,
// some test harnesses send a number.
type Millis int64

func (m *Millis) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid media timestamp %q: %w", s, err)
	}
	*m = Millis(f)
	return nil
}

type MediaFormat struct {
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
}

type StartPayload struct {
	StreamSid        string            `json:"streamSid"`
	AccountSid       string            `json:"accountSid"`
	CallSid          string            `json:"callSid"`
	Tracks           []string          `json:"tracks"`
	CustomParameters map[string]string `json:"customParameters"`
	MediaFormat      MediaFormat       `json:"mediaFormat"`
}

type MediaPayload struct {
	Track     string `json:"track"`
	Chunk     string `json:"chunk"`
	Timestamp Millis `json:"timestamp"`
	Payload   string `json:"payload"`
}

type StopPayload struct {
	AccountSid string `json:"accountSid"`
	CallSid    string `json:"callSid"`
}

type MarkPayload struct {
	Name string `json:"name"`
}

// InboundEvent is one frame received from Twilio. Only the payload matching
// Event is set.
type InboundEvent struct {
	Event          string        `json:"event"`
	SequenceNumber string        `json:"sequenceNumber,omitempty"`
	StreamSid      string        `json:"streamSid,omitempty"`
	Start          *StartPayload `json:"start,omitempty"`
	Media          *MediaPayload `json:"media,omitempty"`
	Stop           *StopPayload  `json:"stop,omitempty"`
	Mark           *MarkPayload  `json:"mark,omitempty"`
}

// DecodeInbound parses a text frame from Twilio.
func DecodeInbound(raw []byte) (InboundEvent, error) {
	var ev InboundEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return InboundEvent{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if ev.Event == "" {
		return InboundEvent{}, fmt.Errorf("%w: missing event", ErrMalformedFrame)
	}
	if ev.Event == EventStart && ev.Start == nil {
		return InboundEvent{}, fmt.Errorf("%w: start without payload", ErrMalformedFrame)
	}
	if ev.Event == EventMedia && ev.Media == nil {
		return InboundEvent{}, fmt.Errorf("%w: media without payload", ErrMalformedFrame)
	}
	if ev.Start != nil && ev.StreamSid == "" {
		ev.StreamSid = ev.Start.StreamSid
	}
	return ev, nil
}

type outboundMedia struct {
	Event     string `json:"event"`
	StreamSid string `json:"streamSid"`
	Media     struct {
		Payload string `json:"payload"`
	} `json:"media"`
}

type outboundMark struct {
	Event     string      `json:"event"`
	StreamSid string      `json:"streamSid"`
	Mark      MarkPayload `json:"mark"`
}

type outboundClear struct {
	Event     string `json:"event"`
	StreamSid string `json:"streamSid"`
}

func newMedia(streamSid, payload string) outboundMedia {
	m := outboundMedia{Event: EventMedia, StreamSid: streamSid}
	m.Media.Payload = payload
	return m
}

func newMark(streamSid, name string) outboundMark {
	return outboundMark{Event: EventMark, StreamSid: streamSid, Mark: MarkPayload{Name: name}}
}

func newClear(streamSid string) outboundClear {
	return outboundClear{Event: EventClear, StreamSid: streamSid}
}
