package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleListTools returns the local tools advertised to every agent.
func (h *Handler) HandleListTools(c *gin.Context) {
	definitions := h.tools.Definitions()
	c.JSON(http.StatusOK, gin.H{
		"tools": definitions,
		"count": len(definitions),
	})
}
