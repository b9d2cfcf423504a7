package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marblesound/marblesound-api/internal/dto"
	apierrors "github.com/marblesound/marblesound-api/internal/errors"
	"github.com/marblesound/marblesound-api/internal/middleware"
	"github.com/marblesound/marblesound-api/internal/repository"
	"github.com/marblesound/marblesound-api/internal/services"
	"github.com/marblesound/marblesound-api/internal/storage"
	"github.com/samber/lo"
)

// AudioHandler coordinates audio catalog HTTP handlers.
type AudioHandler struct {
	audioService  *services.AudioService
	searchService *services.SearchService
	store         *storage.Storage
}

// NewAudioHandler creates a new AudioHandler.
func NewAudioHandler(audioService *services.AudioService, searchService *services.SearchService, store *storage.Storage) *AudioHandler {
	return &AudioHandler{
		audioService:  audioService,
		searchService: searchService,
		store:         store,
	}
}

// CreateAudio stores the uploaded audio file and optional cover, then
// persists the audio with its metadata and genre links.
func (h *AudioHandler) CreateAudio(c *gin.Context) {
	title := c.PostForm("title")
	instrument := c.PostForm("instrument")
	genres := c.PostFormArray("genres")

	var keyName *string
	if key := c.PostForm("key"); key != "" {
		keyName = &key
	}

	var bpm *int
	if raw := c.PostForm("bpm"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid bpm")
			return
		}
		bpm = &value
	}

	isLoop := false
	if raw := c.PostForm("is_loop"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid is_loop")
			return
		}
		isLoop = value
	}

	filePath, ok := storeUpload(c, h.store, storage.CategoryAudioFile, "file", true)
	if !ok {
		return
	}

	coverPath, ok := storeUpload(c, h.store, storage.CategoryAudioCover, "cover", false)
	if !ok {
		h.store.Delete(*filePath)
		return
	}

	userID, _ := middleware.GetUserID(c)

	audio, err := h.audioService.CreateAudio(services.CreateAudioInput{
		AuthorID:       userID,
		Title:          title,
		FilePath:       *filePath,
		CoverPath:      coverPath,
		InstrumentName: instrument,
		KeyName:        keyName,
		Bpm:            bpm,
		IsLoop:         isLoop,
		GenreNames:     genres,
	})
	if err != nil {
		// Nothing was persisted; the stored files must not outlive the request.
		h.store.Delete(*filePath)
		if coverPath != nil {
			h.store.Delete(*coverPath)
		}
		respondAudioError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAudioDTO(*audio))
}

// GetAudio returns a single audio projection.
func (h *AudioHandler) GetAudio(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	audio, err := h.audioService.GetAudio(id)
	if err != nil {
		respondAudioError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAudioDTO(*audio))
}

// UpdateAudio applies a partial update; a provided genre list replaces
// the audio's whole genre set.
func (h *AudioHandler) UpdateAudio(c *gin.Context) {
	type UpdateAudioRequest struct {
		Title      *string   `json:"title"`
		Bpm        *int      `json:"bpm"`
		IsLoop     *bool     `json:"is_loop"`
		Key        *string   `json:"key"`
		Instrument *string   `json:"instrument"`
		Genres     *[]string `json:"genres"`
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)

	audio, err := h.audioService.UpdateAudio(id, userID, services.UpdateAudioInput{
		Title:          req.Title,
		Bpm:            req.Bpm,
		IsLoop:         req.IsLoop,
		KeyName:        req.Key,
		InstrumentName: req.Instrument,
		GenreNames:     req.Genres,
	})
	if err != nil {
		respondAudioError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAudioDTO(*audio))
}

// DeleteAudio removes an audio and everything referencing it.
func (h *AudioHandler) DeleteAudio(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.audioService.DeleteAudio(id, userID); err != nil {
		respondAudioError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Audio deleted",
	})
}

// SearchAudios runs a filtered search. At least one filter must be set.
func (h *AudioHandler) SearchAudios(c *gin.Context) {
	type SearchRequest struct {
		Title       *string  `json:"title"`
		BpmMin      *int     `json:"bpm_min"`
		BpmMax      *int     `json:"bpm_max"`
		Instruments []string `json:"instruments"`
		Genres      []string `json:"genres"`
		Keys        []string `json:"keys"`
		IsLoop      *bool    `json:"is_loop"`
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	results, err := h.searchService.SearchAudios(repository.AudioFilter{
		Title:       req.Title,
		BpmMin:      req.BpmMin,
		BpmMax:      req.BpmMax,
		Instruments: req.Instruments,
		Genres:      req.Genres,
		Keys:        req.Keys,
		IsLoop:      req.IsLoop,
	})
	if err != nil {
		respondAudioError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(results, func(row repository.AudioWithFavorites, _ int) dto.AudioWithCountDTO {
		return dto.ToAudioWithCountDTO(row)
	}))
}

// PopularAudios lists audios ranked by favorite count.
func (h *AudioHandler) PopularAudios(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := h.searchService.PopularAudios(limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, lo.Map(results, func(row repository.AudioWithFavorites, _ int) dto.AudioWithCountDTO {
		return dto.ToAudioWithCountDTO(row)
	}))
}

func respondAudioError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAudioNotFound),
		errors.Is(err, services.ErrInstrumentNotFound),
		errors.Is(err, services.ErrGenreNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNoSearchFilters):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
