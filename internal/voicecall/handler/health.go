package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleHealth reports liveness and the number of live sessions.
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"active_sessions": h.sessions.Count(),
	})
}
