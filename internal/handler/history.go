package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oba-digital/obi-backend/internal/domain"
)

type saveHistoryRequest struct {
	UserID   int64  `json:"userId" binding:"required"`
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// HandleSaveHistory persists a question/answer pair after the user
// confirmed saving it. Duplicates are rejected, not overwritten.
func (h *Handler) HandleSaveHistory(c *gin.Context) {
	var req saveHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, question and answer are required"})
		return
	}

	entry, err := h.answers.Save(c.Request.Context(), req.Question, req.Answer, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateQuestion) {
			c.JSON(http.StatusConflict, gin.H{"error": "question already saved"})
			return
		}
		slog.Error("save history entry", "error", err, "user_id", req.UserID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       entry.ID,
		"question": entry.Question,
		"answer":   entry.Answer,
	})
}

// HandleListHistory returns the user's saved questions.
func (h *Handler) HandleListHistory(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	entries, err := h.answers.ListQuestions(c.Request.Context(), userID)
	if err != nil {
		slog.Error("list history", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}

	questions := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		questions = append(questions, gin.H{"question": e.Question, "answer": e.Answer})
	}
	c.JSON(http.StatusOK, questions)
}

type deleteHistoryRequest struct {
	UserID   int64  `json:"userId" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// HandleDeleteHistory removes one saved question.
func (h *Handler) HandleDeleteHistory(c *gin.Context) {
	var req deleteHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and question are required"})
		return
	}

	err := h.answers.DeleteQuestion(c.Request.Context(), req.UserID, req.Question)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}
		slog.Error("delete history entry", "error", err, "user_id", req.UserID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete question"})
		return
	}
	c.Status(http.StatusNoContent)
}
