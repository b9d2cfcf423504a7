package repository

import (
	"github.com/marblesound/marblesound-api/internal/models"
	"gorm.io/gorm"
)

// GormFavoriteRepository is a GORM implementation of FavoriteRepository
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Create creates a favorite link
func (r *GormFavoriteRepository) Create(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

// Delete removes favorites matching whichever target identifiers are provided
func (r *GormFavoriteRepository) Delete(userID uint64, audioID, playlistID *uint64) error {
	query := r.db.Where("user_id = ?", userID)
	if audioID != nil {
		query = query.Where("audio_id = ?", *audioID)
	}
	if playlistID != nil {
		query = query.Where("playlist_id = ?", *playlistID)
	}

	result := query.Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByUser returns a user's favorites with their targets loaded
func (r *GormFavoriteRepository) ListByUser(userID uint64) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.
		Preload("Audio").
		Preload("Audio.Key").
		Preload("Audio.Instrument").
		Preload("Audio.Author").
		Preload("Audio.Genres.Genre").
		Preload("Playlist").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}
