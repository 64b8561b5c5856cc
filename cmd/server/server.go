package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ragops/server/internal/config"
	"github.com/ragops/server/internal/storage"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small, managed Postgres poolers cap connections
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := storage.NewClientWithPool(db)

	services, err := InitializeServices(cfg, store)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// schema init is idempotent, but the embedding column width is
	// fixed at first boot and must match the embedder afterwards
	if err := store.InitSchema(ctx, services.Embedder.Dimension()); err != nil {
		db.Close()
		return nil, err
	}

	if err := store.ValidateDimension(ctx, services.Embedder.Dimension()); err != nil {
		db.Close()
		return nil, err
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:       db,
		config:   cfg,
		store:    store,
		services: services,
		router:   router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

func (s *Server) Close() {
	s.db.Close()
}
