package handler

import (
	"errors"
	"net/http"
	"realtime-bridge/internal/apierrors"
	"realtime-bridge/internal/voicecall/processor"

	"github.com/gin-gonic/gin"
)

// StatusCallbackRequest is the subset of the Twilio status callback we use.
type StatusCallbackRequest struct {
	CallSID    string `form:"CallSid" binding:"required"`
	CallStatus string `form:"CallStatus" binding:"required"`
}

// HandleStatusCallback records terminal call statuses reported by Twilio and
// tears down a session that is still live.
func (h *Handler) HandleStatusCallback(c *gin.Context) {
	ctx := c.Request.Context()

	var req StatusCallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	sessionID, err := h.calls.HandleStatusCallback(ctx, req.CallSID, req.CallStatus)
	if err != nil {
		if errors.Is(err, processor.ErrCallNotFound) {
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		apierrors.RespondWithError(c, err)
		return
	}

	if sessionID != "" {
		h.sessions.Cleanup(ctx, sessionID)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
