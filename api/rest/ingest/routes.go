package ingest

import (
	"github.com/gin-gonic/gin"

	ingestcore "github.com/ragops/server/internal/ingest"
	"github.com/ragops/server/internal/storage"
)

func RegisterRoutes(router *gin.RouterGroup, pipeline *ingestcore.Pipeline, store *storage.Client) {
	router.POST("/ingest", Handler(pipeline))
	router.DELETE("/collections/:name", PurgeHandler(store))
	router.GET("/collections/:name/stats", StatsHandler(store))
}
