package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oba-digital/obi-backend/internal/domain"
)

// MsgTechnicalProblem is the answer of last resort: whatever goes wrong
// inside the pipeline, the user always gets exactly one bot message.
const MsgTechnicalProblem = "Oops! OBI heeft technische problemen! Meld dit bij een medewerker."

type questionRequest struct {
	ConversationID string `json:"conversationId"`
	UserID         int64  `json:"userId"`
	Content        string `json:"content" binding:"required"`
}

// HandleQuestion resolves one user question through the fallback
// pipeline and returns the displayable answer. A missing or unknown
// conversationId starts a fresh conversation.
func (h *Handler) HandleQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	session := h.sessions.FindOrCreate(req.ConversationID)
	question := domain.Question{Text: req.Content, UserID: req.UserID}

	res, err := h.resolver.Resolve(c.Request.Context(), question, session)
	if err != nil {
		slog.Error("question resolution failed", "error", err, "conversation_id", session.ID)
		c.JSON(http.StatusOK, gin.H{
			"conversationId": session.ID,
			"output":         MsgTechnicalProblem,
			"provenance":     domain.ProvenanceGenerated,
		})
		return
	}

	resp := gin.H{
		"conversationId": session.ID,
		"output":         res.AnswerText,
		"provenance":     res.Provenance,
	}
	// Distinguish "search ran and found nothing" (empty list) from
	// "no search ran" (field absent).
	if res.CatalogResults != nil {
		resp["catalogResults"] = res.CatalogResults
	}
	c.JSON(http.StatusOK, resp)
}

// HandleEndConversation discards a conversation and its history.
func (h *Handler) HandleEndConversation(c *gin.Context) {
	h.sessions.End(c.Param("id"))
	c.Status(http.StatusNoContent)
}
