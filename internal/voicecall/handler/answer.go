package handler

import (
	"fmt"
	"net/http"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/voicecall/processor"

	"github.com/gin-gonic/gin"
	"github.com/twilio/twilio-go/twiml"
)

const (
	connectingMessage  = "Please wait while we connect your call to the AI voice assistant."
	unavailableMessage = "We're sorry, but we're unable to process your call at this time. Please try again later."
	mediaStreamPath    = "/api/phone/media-stream/"
)

// AnswerRequest is the subset of the Twilio voice webhook we use.
type AnswerRequest struct {
	CallSID string `form:"CallSid" binding:"required"`
	From    string `form:"From"`
	To      string `form:"To"`
	AgentID string `form:"agent_id"`
}

// HandleAnswer answers a Twilio voice webhook with TwiML that connects the
// call to a bidirectional media stream.
func (h *Handler) HandleAnswer(c *gin.Context) {
	ctx := c.Request.Context()

	var req AnswerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Error(ctx, "invalid voice webhook", err)
		h.respondUnavailable(c)
		return
	}
	if req.AgentID == "" {
		req.AgentID = c.Query("agent_id")
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "call_sid", Value: req.CallSID},
		observability.Field{Key: "from", Value: req.From},
		observability.Field{Key: "to", Value: req.To},
	)

	answered, err := h.calls.AnswerCall(ctx, processor.AnswerCallParams{
		CallSID: req.CallSID,
		From:    req.From,
		To:      req.To,
		AgentID: req.AgentID,
	})
	if err != nil {
		h.logger.Error(ctx, "failed to answer call", err)
		h.respondUnavailable(c)
		return
	}

	sessionID := answered.Call.SessionID
	ctx = observability.WithFields(ctx, observability.Field{Key: "session_id", Value: sessionID})

	var token string
	if h.tokens != nil && h.tokens.Enabled() {
		token, err = h.tokens.Issue(sessionID, req.CallSID)
		if err != nil {
			h.logger.Error(ctx, "failed to issue stream token", err)
			h.respondUnavailable(c)
			return
		}
	}

	params := []twiml.Element{
		twiml.VoiceParameter{Name: "session_id", Value: sessionID},
		twiml.VoiceParameter{Name: "caller", Value: answered.Call.CallerNumber},
		twiml.VoiceParameter{Name: "called", Value: answered.Call.CalledNumber},
		twiml.VoiceParameter{Name: "direction", Value: answered.Call.Direction},
	}
	if token != "" {
		params = append(params, twiml.VoiceParameter{Name: "token", Value: token})
	}

	say := twiml.VoiceSay{Message: connectingMessage}
	stream := twiml.VoiceStream{
		Url:           h.mediaStreamURL(c, sessionID),
		InnerElements: params,
	}
	connect := twiml.VoiceConnect{InnerElements: []twiml.Element{stream}}

	twimlResult, err := twiml.Voice([]twiml.Element{say, connect})
	if err != nil {
		h.logger.Error(ctx, "failed to render answer twiml", err)
		h.respondUnavailable(c)
		return
	}

	h.logger.Info(ctx, "answered call with media stream")
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, twimlResult)
}

func (h *Handler) mediaStreamURL(c *gin.Context, sessionID string) string {
	host := h.publicHost
	if host == "" {
		host = c.Request.Host
	}
	return fmt.Sprintf("wss://%s%s%s", host, mediaStreamPath, sessionID)
}

// respondUnavailable tells the caller we cannot take the call and hangs up.
func (h *Handler) respondUnavailable(c *gin.Context) {
	twimlResult, err := twiml.Voice([]twiml.Element{
		twiml.VoiceSay{Message: unavailableMessage},
		twiml.VoiceHangup{},
	})
	if err != nil {
		h.logger.Error(c.Request.Context(), "failed to render fallback twiml", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, twimlResult)
}
