package handler

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oba-digital/obi-backend/internal/config"
)

// HandleUpload stores one multipart file under the uploads directory.
// The stored name is a fresh uuid so uploads never overwrite each other.
func (h *Handler) HandleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file was uploaded"})
		return
	}
	if file.Size > config.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dest := filepath.Join(h.cfg.UploadDir, name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		slog.Error("save uploaded file", "error", err, "name", name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}
