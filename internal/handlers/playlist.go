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

// PlaylistHandler coordinates playlist HTTP handlers.
type PlaylistHandler struct {
	playlistService *services.PlaylistService
	searchService   *services.SearchService
	store           *storage.Storage
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(playlistService *services.PlaylistService, searchService *services.SearchService, store *storage.Storage) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: playlistService,
		searchService:   searchService,
		store:           store,
	}
}

// CreatePlaylist creates an empty playlist with an optional cover.
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	name := c.PostForm("name")

	coverPath, ok := storeUpload(c, h.store, storage.CategoryPlaylistCover, "cover", false)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	playlist, err := h.playlistService.CreatePlaylist(userID, name, coverPath)
	if err != nil {
		if coverPath != nil {
			h.store.Delete(*coverPath)
		}
		respondPlaylistError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPlaylistDTO(*playlist))
}

// GetPlaylist returns a playlist with its members in position order.
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	playlist, err := h.playlistService.GetPlaylist(id)
	if err != nil {
		respondPlaylistError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPlaylistDTO(*playlist))
}

// UpdatePlaylist applies a partial update.
func (h *PlaylistHandler) UpdatePlaylist(c *gin.Context) {
	type UpdatePlaylistRequest struct {
		Name *string `json:"name"`
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)

	playlist, err := h.playlistService.UpdatePlaylist(id, userID, services.UpdatePlaylistInput{
		Name: req.Name,
	})
	if err != nil {
		respondPlaylistError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPlaylistDTO(*playlist))
}

// UpdateCover stores a new cover file and swaps the stored path.
func (h *PlaylistHandler) UpdateCover(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	path, ok := storeUpload(c, h.store, storage.CategoryPlaylistCover, "cover", true)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	playlist, err := h.playlistService.UpdateCover(id, userID, *path)
	if err != nil {
		h.store.Delete(*path)
		respondPlaylistError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPlaylistDTO(*playlist))
}

// DeletePlaylist removes a playlist and everything referencing it.
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.playlistService.DeletePlaylist(id, userID); err != nil {
		respondPlaylistError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Playlist deleted",
	})
}

// AddAudio appends an audio to the playlist.
func (h *PlaylistHandler) AddAudio(c *gin.Context) {
	type AddAudioRequest struct {
		AudioID uint64 `json:"audio_id" binding:"required"`
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)

	position, err := h.playlistService.AddAudio(id, req.AudioID, userID)
	if err != nil {
		respondPlaylistError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"playlist_id": id,
		"audio_id":    req.AudioID,
		"position":    position,
	})
}

// RemoveAudio removes an audio from the playlist and re-packs positions.
func (h *PlaylistHandler) RemoveAudio(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	audioID, ok := parseIDParam(c, "audio_id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.playlistService.RemoveAudio(id, audioID, userID); err != nil {
		respondPlaylistError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Audio removed from playlist",
	})
}

// PopularPlaylists lists playlists ranked by favorite count.
func (h *PlaylistHandler) PopularPlaylists(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := h.searchService.PopularPlaylists(limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, lo.Map(results, func(row repository.PlaylistWithFavorites, _ int) dto.PlaylistWithCountDTO {
		return dto.ToPlaylistWithCountDTO(row)
	}))
}

func respondPlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPlaylistNotFound),
		errors.Is(err, services.ErrAudioNotFound),
		errors.Is(err, services.ErrAudioNotInPlaylist):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotPlaylistAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
