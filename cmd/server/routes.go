package main

import (
	"github.com/gin-gonic/gin"

	"github.com/ragops/server/api/rest/chat"
	"github.com/ragops/server/api/rest/feedback"
	"github.com/ragops/server/api/rest/health"
	"github.com/ragops/server/api/rest/ingest"
	"github.com/ragops/server/api/rest/query"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler(server.store))

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware())

	{
		v1.GET("/ping", health.PingHandler)

		query.RegisterRoutes(v1, server.services.Retriever)
		chat.RegisterRoutes(v1, server.services.Chat, server.store)
		ingest.RegisterRoutes(v1, server.services.Ingest, server.store)
		feedback.RegisterRoutes(v1, server.store)
	}
}
