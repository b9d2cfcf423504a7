package repository

import (
	"errors"
	"strings"

	"github.com/marblesound/marblesound-api/internal/models"
	"gorm.io/gorm"
)

// GormVocabularyRepository is a GORM implementation of VocabularyRepository
type GormVocabularyRepository struct {
	db *gorm.DB
}

// NewVocabularyRepository creates a new VocabularyRepository
func NewVocabularyRepository(db *gorm.DB) VocabularyRepository {
	return &GormVocabularyRepository{db: db}
}

// FindGenreByName finds a genre by case-insensitive exact name
func (r *GormVocabularyRepository) FindGenreByName(name string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// FindInstrumentByName finds an instrument by case-insensitive exact name
func (r *GormVocabularyRepository) FindInstrumentByName(name string) (*models.Instrument, error) {
	var instrument models.Instrument
	if err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&instrument).Error; err != nil {
		return nil, err
	}
	return &instrument, nil
}

// FindOrCreateKey finds a key by case-insensitive exact name, creating it on first use
func (r *GormVocabularyRepository) FindOrCreateKey(name string) (*models.Key, error) {
	var key models.Key
	err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&key).Error
	if err == nil {
		return &key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	key = models.Key{Name: name}
	if err := r.db.Create(&key).Error; err != nil {
		return nil, err
	}
	return &key, nil
}

// ListGenres returns all genres
func (r *GormVocabularyRepository) ListGenres() ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.Order("id ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

// ListInstruments returns all instruments
func (r *GormVocabularyRepository) ListInstruments() ([]models.Instrument, error) {
	var instruments []models.Instrument
	if err := r.db.Order("id ASC").Find(&instruments).Error; err != nil {
		return nil, err
	}
	return instruments, nil
}

// ListKeys returns all keys
func (r *GormVocabularyRepository) ListKeys() ([]models.Key, error) {
	var keys []models.Key
	if err := r.db.Order("id ASC").Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}
