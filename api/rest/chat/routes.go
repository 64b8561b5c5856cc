package chat

import (
	"github.com/gin-gonic/gin"

	chatcore "github.com/ragops/server/internal/chat"
	"github.com/ragops/server/internal/storage"
)

func RegisterRoutes(router *gin.RouterGroup, engine *chatcore.Engine, store *storage.Client) {
	router.POST("/chat", Handler(engine))
	router.GET("/chat/sessions/:id/messages", HistoryHandler(store))
}
