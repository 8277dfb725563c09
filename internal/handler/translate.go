package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oba-digital/obi-backend/internal/domain"
)

type translateRequest struct {
	Text           string `json:"untranslatedText" binding:"required"`
	TargetLanguage string `json:"selectedLanguage" binding:"required"`
}

// HandleTranslate translates an interface text into the selected language.
func (h *Handler) HandleTranslate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "untranslatedText and selectedLanguage are required"})
		return
	}

	translated, err := h.translate.Translate(c.Request.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		if errors.Is(err, domain.ErrTranslateDisabled) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "translation is not configured"})
			return
		}
		slog.Error("translate text", "error", err, "target", req.TargetLanguage)
		c.JSON(http.StatusBadGateway, gin.H{"error": "translation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"output": translated})
}
