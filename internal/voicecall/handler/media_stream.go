package handler

import (
	"context"
	"errors"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/realtime/session"
	"realtime-bridge/internal/store"
	"realtime-bridge/internal/voicecall/processor"
	"realtime-bridge/internal/voicecall/twilio"

	"github.com/gin-gonic/gin"
)

// HandleMediaStream serves the Twilio Media Streams websocket of one call.
func (h *Handler) HandleMediaStream(c *gin.Context) {
	sessionID := c.Param("session_id")
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "session_id", Value: sessionID})

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(ctx, "WebSocket upgrade failed", err)
		return
	}
	conn := twilio.NewConn(ws, h.logger)

	// the request context is cancelled once the handler returns; the session
	// outlives it only until the deferred cleanup
	streamCtx := context.WithoutCancel(ctx)

	agent := h.agentFor(streamCtx, sessionID)
	sess := h.sessions.GetOrCreate(streamCtx, sessionID, agent)
	defer h.sessions.Cleanup(streamCtx, sessionID)

	if err := sess.AttachTelephony(conn); err != nil {
		h.logger.Warn(streamCtx, "media stream arrived for a finished session")
		_ = conn.Close()
		return
	}

	h.logger.Info(streamCtx, "media stream connected")

	for {
		frame, err := conn.ReadFrame()
		if err != nil {
			if errors.Is(err, twilio.ErrClosed) {
				h.logger.Info(streamCtx, "media stream disconnected")
				sess.End(streamCtx, store.CallStatusEnded)
			} else {
				h.logger.Error(streamCtx, "media stream read failed", err)
				sess.End(streamCtx, store.CallStatusError)
			}
			return
		}

		if err := sess.HandleTelephonyMessage(streamCtx, frame); err != nil {
			if !errors.Is(err, session.ErrEnded) {
				h.logger.Error(streamCtx, "failed to handle media stream frame", err)
			}
			return
		}
	}
}

// agentFor loads the agent recorded for the session. An unknown session runs
// with the default configuration.
func (h *Handler) agentFor(ctx context.Context, sessionID string) *store.AgentConfig {
	if existing, ok := h.sessions.Get(sessionID); ok && existing.HasAgent() {
		return nil
	}

	agent, err := h.calls.AgentForSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, processor.ErrCallNotFound) {
			h.logger.Warn(ctx, "no call recorded for media stream, using default agent settings")
		} else {
			h.logger.Error(ctx, "failed to load agent for media stream", err)
		}
		return nil
	}
	return agent
}
