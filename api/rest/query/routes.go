package query

import (
	"github.com/gin-gonic/gin"

	"github.com/ragops/server/internal/retriever"
)

func RegisterRoutes(router *gin.RouterGroup, r *retriever.Retriever) {
	router.POST("/query", Handler(r))
}
