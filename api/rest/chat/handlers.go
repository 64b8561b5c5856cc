package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	chatcore "github.com/ragops/server/internal/chat"
	"github.com/ragops/server/internal/errors"
	"github.com/ragops/server/internal/storage"
)

// Handler godoc
// @Summary Ask a question in a multi-turn session
// @Description Conversational retrieval with persisted session memory
// @Tags chat
// @Accept json
// @Produce json
// @Param request body Request true "Chat request"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/chat [post]
func Handler(engine *chatcore.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if req.SessionID != "" && !errors.IsValidUUID(req.SessionID) {
			errors.BadRequest(c, "field 'session_id' must be a UUID", nil)
			return
		}

		result, err := engine.Chat(c.Request.Context(), chatcore.Request{
			Question:       req.Question,
			SessionID:      req.SessionID,
			Mode:           req.Mode,
			Style:          req.AnswerStyle,
			Collection:     req.Collection,
			TopK:           req.TopK,
			IncludeContext: req.IncludeContext,
		})
		if err != nil {
			errors.RespondError(c, err, "failed to execute chat turn")
			return
		}

		c.JSON(http.StatusOK, Response{
			SessionID:       result.SessionID,
			Answer:          result.Answer,
			Citations:       result.Citations,
			Retrieved:       result.Retrieved,
			LatencyMS:       result.LatencyMS,
			Mode:            result.Mode,
			TurnIndex:       result.TurnIndex,
			AnswerStyle:     result.AnswerStyle,
			ContextSnippets: result.ContextSnippets,
		})
	}
}

// HistoryHandler godoc
// @Summary Get session transcript
// @Description Full message history for a chat session
// @Tags chat
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} HistoryResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/chat/sessions/{id}/messages [get]
func HistoryHandler(store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")
		if !errors.IsValidUUID(sessionID) {
			errors.SessionNotFound(c)
			return
		}

		session, err := store.SessionByID(c.Request.Context(), sessionID)
		if err != nil {
			errors.InternalError(c, "failed to look up session", err)
			return
		}

		if session == nil {
			errors.SessionNotFound(c)
			return
		}

		messages, err := store.ListMessages(c.Request.Context(), sessionID)
		if err != nil {
			errors.InternalError(c, "failed to list messages", err)
			return
		}

		out := make([]MessageResponse, 0, len(messages))
		for _, msg := range messages {
			out = append(out, MessageResponse{
				ID:        msg.ID,
				Role:      msg.Role,
				Content:   msg.Content,
				Citations: msg.Citations,
				CreatedAt: msg.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, HistoryResponse{
			SessionID: sessionID,
			Messages:  out,
		})
	}
}
