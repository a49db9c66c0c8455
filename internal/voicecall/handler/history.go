package handler

import (
	"net/http"
	"realtime-bridge/internal/apierrors"

	"github.com/gin-gonic/gin"
)

type pageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

func (h *Handler) HandleListCalls(c *gin.Context) {
	var page pageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	calls, err := h.calls.ListCalls(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"calls": calls, "count": len(calls)})
}

// HandleGetCall returns a call with its transcript turns.
func (h *Handler) HandleGetCall(c *gin.Context) {
	history, err := h.calls.GetCallHistory(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	live := false
	if sess, ok := h.sessions.Get(c.Param("session_id")); ok {
		live = true
		c.Header("X-Session-State", sess.State().String())
	}
	c.JSON(http.StatusOK, gin.H{
		"call":         history.Call,
		"conversation": history.Conversation,
		"turns":        history.Turns,
		"live":         live,
	})
}

// HandleGetCallEvents returns the raw model events stored for a call.
func (h *Handler) HandleGetCallEvents(c *gin.Context) {
	var page pageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	events, err := h.calls.GetCallEvents(c.Request.Context(), c.Param("session_id"), page.Limit, page.Offset)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}
