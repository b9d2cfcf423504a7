package services

import (
	"errors"
	"fmt"

	"github.com/marblesound/marblesound-api/internal/constants"
	"github.com/marblesound/marblesound-api/internal/repository"
)

var ErrNoSearchFilters = errors.New("at least one search filter is required")

// SearchService handles audio search and popularity listings.
type SearchService struct {
	audioRepo    repository.AudioRepository
	playlistRepo repository.PlaylistRepository
}

// NewSearchService creates a new SearchService.
func NewSearchService(audioRepo repository.AudioRepository, playlistRepo repository.PlaylistRepository) *SearchService {
	return &SearchService{
		audioRepo:    audioRepo,
		playlistRepo: playlistRepo,
	}
}

// SearchAudios runs a filtered audio search. All provided filters are
// combined with AND; at least one must be set.
func (s *SearchService) SearchAudios(filter repository.AudioFilter) ([]repository.AudioWithFavorites, error) {
	if filter.Empty() {
		return nil, ErrNoSearchFilters
	}

	results, err := s.audioRepo.Search(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search audios: %w", err)
	}
	return results, nil
}

// PopularAudios returns the most favorited audios.
func (s *SearchService) PopularAudios(limit int) ([]repository.AudioWithFavorites, error) {
	results, err := s.audioRepo.Popular(clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list popular audios: %w", err)
	}
	return results, nil
}

// PopularPlaylists returns the most favorited playlists.
func (s *SearchService) PopularPlaylists(limit int) ([]repository.PlaylistWithFavorites, error) {
	results, err := s.playlistRepo.Popular(clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list popular playlists: %w", err)
	}
	return results, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultPopularLimit
	}
	if limit > constants.MaxPopularLimit {
		return constants.MaxPopularLimit
	}
	return limit
}
