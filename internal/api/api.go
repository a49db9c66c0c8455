package api

import (
	voiceCallHandler "realtime-bridge/internal/voicecall/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	voiceCallHandler voiceCallHandler.Handler
}

func New(router *gin.RouterGroup, voiceCallHandler voiceCallHandler.Handler) API {
	return API{
		router:           router,
		voiceCallHandler: voiceCallHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		phoneGroup := apiGroup.Group("/phone")
		phoneGroup.POST("/answer", a.voiceCallHandler.HandleAnswer)
		phoneGroup.GET("/answer", a.voiceCallHandler.HandleAnswer)
		phoneGroup.POST("/status", a.voiceCallHandler.HandleStatusCallback)
		phoneGroup.GET("/media-stream/:session_id", a.voiceCallHandler.HandleMediaStream)
		phoneGroup.GET("/tools", a.voiceCallHandler.HandleListTools)
		phoneGroup.GET("/calls", a.voiceCallHandler.HandleListCalls)
		phoneGroup.GET("/calls/:session_id", a.voiceCallHandler.HandleGetCall)
		phoneGroup.GET("/calls/:session_id/events", a.voiceCallHandler.HandleGetCallEvents)
	}
}

func (a *API) Health() {
	a.router.GET("/health", a.voiceCallHandler.HandleHealth)
}
