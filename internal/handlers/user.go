package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marblesound/marblesound-api/internal/dto"
	apierrors "github.com/marblesound/marblesound-api/internal/errors"
	"github.com/marblesound/marblesound-api/internal/middleware"
	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/marblesound/marblesound-api/internal/services"
	"github.com/marblesound/marblesound-api/internal/storage"
	"github.com/samber/lo"
)

// UserHandler coordinates user directory HTTP handlers.
type UserHandler struct {
	userService     *services.UserService
	favoriteService *services.FavoriteService
	store           *storage.Storage
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, favoriteService *services.FavoriteService, store *storage.Storage) *UserHandler {
	return &UserHandler{
		userService:     userService,
		favoriteService: favoriteService,
		store:           store,
	}
}

// GetUser returns a single user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// SearchUsers finds users by username substring, case-insensitively.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	users, err := h.userService.Search(c.Query("username"))
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(users, func(u models.User, _ int) dto.UserDTO {
		return dto.ToUserDTO(u)
	}))
}

// UpdateProfile applies a partial update to the caller's profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	type UpdateProfileRequest struct {
		Username    *string `json:"username"`
		Description *string `json:"description"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)

	user, err := h.userService.UpdateProfile(userID, services.UpdateProfileInput{
		Username:    req.Username,
		Description: req.Description,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateAvatar stores a new avatar file and swaps the stored path.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	path, ok := storeUpload(c, h.store, storage.CategoryAvatar, "avatar", true)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	user, err := h.userService.UpdateAvatar(userID, *path)
	if err != nil {
		h.store.Delete(*path)
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes the caller's account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	if err := h.userService.Delete(userID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted",
	})
}

// GetFavorites lists a user's favorited audios and playlists.
func (h *UserHandler) GetFavorites(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	favorites, err := h.favoriteService.ListForUser(id)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToFavoritesDTO(favorites))
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUsernameTooShort):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
