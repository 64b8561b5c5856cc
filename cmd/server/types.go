package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ragops/server/internal/chat"
	"github.com/ragops/server/internal/config"
	"github.com/ragops/server/internal/ingest"
	"github.com/ragops/server/internal/llm"
	"github.com/ragops/server/internal/retriever"
	"github.com/ragops/server/internal/storage"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	store    *storage.Client
	services *Services
	router   *gin.Engine
}

// holds all service clients (providers, retrieval, chat, ingestion)
type Services struct {
	Embedder  llm.Embedder
	Generator llm.TextGenerator
	Retriever *retriever.Retriever
	Chat      *chat.Engine
	Ingest    *ingest.Pipeline
}
