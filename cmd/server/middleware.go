package main

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ragops/server/internal/logger"
)

const defaultRateLimit = "60-M"

// allows configured origins, falls back to permissive in development
func CORSMiddleware() gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	origins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if origins == "" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	}

	return cors.New(corsConfig)
}

// per-client in-memory rate limit on the API group
func RateLimitMiddleware() gin.HandlerFunc {
	rateSpec := os.Getenv("RATE_LIMIT")
	if rateSpec == "" {
		rateSpec = defaultRateLimit
	}

	rate, err := limiter.NewRateFromFormatted(rateSpec)
	if err != nil {
		logger.Warn("invalid RATE_LIMIT, using default", "value", rateSpec, "error", err)
		rate, _ = limiter.NewRateFromFormatted(defaultRateLimit) //nolint:errcheck,gosec // constant is valid
	}

	return limitergin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}
