package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ragops/server/internal/storage"
)

// Response represents the health check response
type Response struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database,omitempty"`
}

// returns the server health status including database reachability
func Handler(store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := Response{
			Status:  "healthy",
			Service: "ragops",
		}

		if store != nil {
			if err := store.Pool().Ping(c.Request.Context()); err != nil {
				resp.Status = "degraded"
				resp.Database = "unreachable"

				c.JSON(http.StatusServiceUnavailable, resp)

				return
			}

			resp.Database = "ok"
		}

		c.JSON(http.StatusOK, resp)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
