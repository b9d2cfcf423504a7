package services

import (
	"errors"
	"fmt"

	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/marblesound/marblesound-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrFavoriteNotFound        = errors.New("favorite not found")
	ErrFavoriteTargetRequired  = errors.New("either audio_id or playlist_id is required")
	ErrFavoriteTargetAmbiguous = errors.New("only one of audio_id or playlist_id may be set")
)

// FavoriteService handles favorite links. A favorite points at exactly
// one of an audio or a playlist.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	audioRepo    repository.AudioRepository
	playlistRepo repository.PlaylistRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, audioRepo repository.AudioRepository, playlistRepo repository.PlaylistRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		audioRepo:    audioRepo,
		playlistRepo: playlistRepo,
	}
}

// Add creates a favorite link for the user. Exactly one target must be
// provided and it must exist.
func (s *FavoriteService) Add(userID uint64, audioID, playlistID *uint64) (*models.Favorite, error) {
	if audioID == nil && playlistID == nil {
		return nil, ErrFavoriteTargetRequired
	}
	if audioID != nil && playlistID != nil {
		return nil, ErrFavoriteTargetAmbiguous
	}

	if audioID != nil {
		if _, err := s.audioRepo.FindByID(*audioID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAudioNotFound
			}
			return nil, fmt.Errorf("failed to find audio: %w", err)
		}
	}
	if playlistID != nil {
		if _, err := s.playlistRepo.FindByID(*playlistID, false); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPlaylistNotFound
			}
			return nil, fmt.Errorf("failed to find playlist: %w", err)
		}
	}

	favorite := &models.Favorite{
		UserID:     userID,
		AudioID:    audioID,
		PlaylistID: playlistID,
	}

	if err := s.favoriteRepo.Create(favorite); err != nil {
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	return favorite, nil
}

// Remove deletes the user's favorites matching whichever target
// identifiers are provided.
func (s *FavoriteService) Remove(userID uint64, audioID, playlistID *uint64) error {
	if audioID == nil && playlistID == nil {
		return ErrFavoriteTargetRequired
	}

	if err := s.favoriteRepo.Delete(userID, audioID, playlistID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFavoriteNotFound
		}
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}

// ListForUser returns a user's favorites with their targets loaded.
func (s *FavoriteService) ListForUser(userID uint64) ([]models.Favorite, error) {
	favorites, err := s.favoriteRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}
