package services

import (
	"fmt"

	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/marblesound/marblesound-api/internal/repository"
)

// VocabularyService exposes the reference vocabularies.
type VocabularyService struct {
	vocabRepo repository.VocabularyRepository
}

// NewVocabularyService creates a new VocabularyService.
func NewVocabularyService(vocabRepo repository.VocabularyRepository) *VocabularyService {
	return &VocabularyService{vocabRepo: vocabRepo}
}

func (s *VocabularyService) ListGenres() ([]models.Genre, error) {
	genres, err := s.vocabRepo.ListGenres()
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *VocabularyService) ListInstruments() ([]models.Instrument, error) {
	instruments, err := s.vocabRepo.ListInstruments()
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", err)
	}
	return instruments, nil
}

func (s *VocabularyService) ListKeys() ([]models.Key, error) {
	keys, err := s.vocabRepo.ListKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}
