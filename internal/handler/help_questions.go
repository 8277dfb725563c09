package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleHelpQuestions returns the seeded example questions shown as
// quick-start buttons on the chat screen.
func (h *Handler) HandleHelpQuestions(c *gin.Context) {
	questions, err := h.helpQuestions.List(c.Request.Context())
	if err != nil {
		slog.Error("list help questions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load help questions"})
		return
	}
	c.JSON(http.StatusOK, questions)
}
