package feedback

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ragops/server/internal/errors"
	"github.com/ragops/server/internal/storage"
)

const maxAnswerChars = 12000

// Handler godoc
// @Summary Record answer feedback
// @Description Store a positive or negative verdict on an answer
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body Request true "Feedback request"
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/feedback [post]
func Handler(store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		verdict := strings.ToLower(strings.TrimSpace(req.Verdict))
		if verdict != "positive" && verdict != "negative" {
			errors.BadRequest(c, "field 'verdict' must be 'positive' or 'negative'", nil)
			return
		}

		if len(req.Answer) > maxAnswerChars {
			errors.BadRequest(c, "field 'answer' exceeds 12000 characters", nil)
			return
		}

		collection := req.Collection
		if collection == "" {
			collection = "default"
		}

		feedbackID, err := store.InsertFeedback(c.Request.Context(), storage.FeedbackEntry{
			SessionID:  req.SessionID,
			Question:   req.Question,
			Answer:     req.Answer,
			Verdict:    verdict,
			Comment:    req.Comment,
			Collection: collection,
			Mode:       req.Mode,
			Citations:  req.Citations,
			Metadata:   req.Metadata,
		})
		if err != nil {
			errors.InternalError(c, "failed to record feedback", err)
			return
		}

		c.JSON(http.StatusCreated, Response{
			Status:     "recorded",
			FeedbackID: feedbackID,
			Collection: collection,
		})
	}
}

// SummaryHandler godoc
// @Summary Feedback summary
// @Description Aggregated verdict counts, optionally scoped by collection
// @Tags feedback
// @Produce json
// @Param collection query string false "Collection name"
// @Success 200 {object} storage.FeedbackSummary
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/feedback/summary [get]
func SummaryHandler(store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := store.GetFeedbackSummary(c.Request.Context(), c.Query("collection"))
		if err != nil {
			errors.InternalError(c, "failed to get feedback summary", err)
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}
