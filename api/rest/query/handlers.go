package query

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ragops/server/internal/errors"
	"github.com/ragops/server/internal/retriever"
)

// Handler godoc
// @Summary Ask a one-shot question
// @Description Retrieve relevant chunks and answer with citations
// @Tags query
// @Accept json
// @Produce json
// @Param request body Request true "Query request"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/query [post]
func Handler(r *retriever.Retriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		result, err := r.Query(c.Request.Context(), retriever.QueryRequest{
			Question:   req.Question,
			Collection: req.Collection,
			TopK:       req.TopK,
		})
		if err != nil {
			errors.RespondError(c, err, "failed to execute query")
			return
		}

		c.JSON(http.StatusOK, Response{
			Answer:          result.Answer,
			Citations:       result.Citations,
			Retrieved:       result.Retrieved,
			LatencyMS:       result.LatencyMS,
			Mode:            result.Mode,
			Confidence:      result.Confidence,
			ConfidenceLabel: result.ConfidenceLabel,
		})
	}
}
