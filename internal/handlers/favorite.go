package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/marblesound/marblesound-api/internal/errors"
	"github.com/marblesound/marblesound-api/internal/middleware"
	"github.com/marblesound/marblesound-api/internal/services"
)

// FavoriteHandler coordinates favorite HTTP handlers.
type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// AddFavorite links the caller to exactly one audio or playlist.
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	type AddFavoriteRequest struct {
		AudioID    *uint64 `json:"audio_id"`
		PlaylistID *uint64 `json:"playlist_id"`
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)

	favorite, err := h.favoriteService.Add(userID, req.AudioID, req.PlaylistID)
	if err != nil {
		respondFavoriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

// RemoveFavorite deletes the caller's favorites matching the query
// parameters audio_id and/or playlist_id.
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	audioID, ok := parseOptionalIDQuery(c, "audio_id")
	if !ok {
		return
	}
	playlistID, ok := parseOptionalIDQuery(c, "playlist_id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.favoriteService.Remove(userID, audioID, playlistID); err != nil {
		respondFavoriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorite removed",
	})
}

func respondFavoriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFavoriteTargetRequired),
		errors.Is(err, services.ErrFavoriteTargetAmbiguous):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFavoriteNotFound),
		errors.Is(err, services.ErrAudioNotFound),
		errors.Is(err, services.ErrPlaylistNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

func parseOptionalIDQuery(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &id, true
}
