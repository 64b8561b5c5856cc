package ingest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ragops/server/internal/errors"
	ingestcore "github.com/ragops/server/internal/ingest"
	"github.com/ragops/server/internal/storage"
)

// Handler godoc
// @Summary Index a local directory
// @Description Chunk, embed, and store every eligible file under a path
// @Tags ingest
// @Accept json
// @Produce json
// @Param request body Request true "Ingest request"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 501 {object} errors.ErrorResponse
// @Router /api/v1/ingest [post]
func Handler(pipeline *ingestcore.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if req.Source != "" && req.Source != "local" {
			errors.NotImplemented(c, "source '"+req.Source+"' is not supported, use 'local'")
			return
		}

		collection := req.Collection
		if collection == "" {
			collection = "default"
		}

		stats, err := pipeline.IngestDirectory(c.Request.Context(), req.Path, collection, req.Excludes)
		if err != nil {
			// a run aborted by a storage failure still carries partial counts
			if stats != nil {
				errors.InternalError(c, "ingestion aborted", err)
				return
			}

			errors.BadRequest(c, "ingestion failed", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Status:     "completed",
			Collection: collection,
			Stats:      *stats,
		})
	}
}

// PurgeHandler godoc
// @Summary Delete a collection
// @Description Remove all documents and chunks in a collection
// @Tags ingest
// @Produce json
// @Param name path string true "Collection name"
// @Success 200 {object} PurgeResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/collections/{name} [delete]
func PurgeHandler(store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		collection := c.Param("name")

		deleted, err := store.PurgeCollection(c.Request.Context(), collection)
		if err != nil {
			errors.InternalError(c, "failed to purge collection", err)
			return
		}

		c.JSON(http.StatusOK, PurgeResponse{
			Collection: collection,
			Deleted:    deleted,
		})
	}
}

// StatsHandler godoc
// @Summary Collection statistics
// @Description Document and chunk counts for a collection
// @Tags ingest
// @Produce json
// @Param name path string true "Collection name"
// @Success 200 {object} storage.CollectionStats
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/collections/{name}/stats [get]
func StatsHandler(store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := store.GetCollectionStats(c.Request.Context(), c.Param("name"))
		if err != nil {
			errors.InternalError(c, "failed to get collection stats", err)
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}
