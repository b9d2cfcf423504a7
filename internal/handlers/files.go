package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/marblesound/marblesound-api/internal/errors"
	"github.com/marblesound/marblesound-api/internal/storage"
)

// FileHandler serves stored files (audio, covers, avatars).
type FileHandler struct {
	store *storage.Storage
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(store *storage.Storage) *FileHandler {
	return &FileHandler{store: store}
}

// ServeFile streams a stored file by its storage path.
func (h *FileHandler) ServeFile(c *gin.Context) {
	relPath := strings.TrimPrefix(c.Param("path"), "/")

	abs, err := h.store.Resolve(relPath)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			apierrors.BadRequest(c, "Invalid file path")
			return
		}
		apierrors.NotFound(c, "File not found")
		return
	}

	c.File(abs)
}
