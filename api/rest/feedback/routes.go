package feedback

import (
	"github.com/gin-gonic/gin"

	"github.com/ragops/server/internal/storage"
)

func RegisterRoutes(router *gin.RouterGroup, store *storage.Client) {
	router.POST("/feedback", Handler(store))
	router.GET("/feedback/summary", SummaryHandler(store))
}
