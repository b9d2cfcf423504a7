package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/marblesound/marblesound-api/internal/errors"
	"github.com/marblesound/marblesound-api/internal/services"
)

// VocabularyHandler serves the reference vocabularies.
type VocabularyHandler struct {
	vocabService *services.VocabularyService
}

// NewVocabularyHandler creates a new VocabularyHandler.
func NewVocabularyHandler(vocabService *services.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{
		vocabService: vocabService,
	}
}

// ListGenres returns all genres.
func (h *VocabularyHandler) ListGenres(c *gin.Context) {
	genres, err := h.vocabService.ListGenres()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, genres)
}

// ListInstruments returns all instruments.
func (h *VocabularyHandler) ListInstruments(c *gin.Context) {
	instruments, err := h.vocabService.ListInstruments()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, instruments)
}

// ListKeys returns all keys.
func (h *VocabularyHandler) ListKeys(c *gin.Context) {
	keys, err := h.vocabService.ListKeys()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, keys)
}
