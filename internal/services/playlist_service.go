package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/marblesound/marblesound-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound   = errors.New("playlist not found")
	ErrNotPlaylistAuthor  = errors.New("only the playlist author can perform this action")
	ErrAudioNotInPlaylist = errors.New("audio is not in the playlist")
	ErrNameRequired       = errors.New("name is required")
)

// PlaylistService handles playlist business logic, including the
// ordered membership rows.
type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	audioRepo    repository.AudioRepository
	files        FileRemover
}

// NewPlaylistService creates a new PlaylistService.
func NewPlaylistService(playlistRepo repository.PlaylistRepository, audioRepo repository.AudioRepository, files FileRemover) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		audioRepo:    audioRepo,
		files:        files,
	}
}

// CreatePlaylist creates an empty playlist.
func (s *PlaylistService) CreatePlaylist(authorID uint64, name string, coverPath *string) (*models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	playlist := &models.Playlist{
		Name:     name,
		Cover:    coverPath,
		AuthorID: authorID,
	}

	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	return playlist, nil
}

// GetPlaylist returns a playlist with its members in position order.
func (s *PlaylistService) GetPlaylist(id uint64) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to find playlist: %w", err)
	}
	return playlist, nil
}

// UpdatePlaylistInput represents a partial playlist update.
type UpdatePlaylistInput struct {
	Name *string
}

// UpdatePlaylist applies the provided fields. Author-only.
func (s *PlaylistService) UpdatePlaylist(playlistID, authorID uint64, input UpdatePlaylistInput) (*models.Playlist, error) {
	playlist, err := s.findOwnedPlaylist(playlistID, authorID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		playlist.Name = name
	}

	if err := s.playlistRepo.Update(playlist); err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}

	return playlist, nil
}

// UpdateCover swaps the stored cover path. The previous file is removed
// best-effort after the new path is persisted.
func (s *PlaylistService) UpdateCover(playlistID, authorID uint64, path string) (*models.Playlist, error) {
	playlist, err := s.findOwnedPlaylist(playlistID, authorID)
	if err != nil {
		return nil, err
	}

	previous := playlist.Cover
	playlist.Cover = &path

	if err := s.playlistRepo.Update(playlist); err != nil {
		return nil, fmt.Errorf("failed to update cover: %w", err)
	}

	if previous != nil && *previous != path {
		s.files.Delete(*previous)
	}

	return playlist, nil
}

// DeletePlaylist removes the playlist with its membership and favorite
// rows in one transaction, then deletes the cover file best-effort.
func (s *PlaylistService) DeletePlaylist(playlistID, authorID uint64) error {
	playlist, err := s.findOwnedPlaylist(playlistID, authorID)
	if err != nil {
		return err
	}

	if err := s.playlistRepo.Delete(playlistID); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	if playlist.Cover != nil {
		s.files.Delete(*playlist.Cover)
	}

	return nil
}

// AddAudio appends an audio to the playlist at position max+1.
func (s *PlaylistService) AddAudio(playlistID, audioID, callerID uint64) (int, error) {
	if _, err := s.findOwnedPlaylist(playlistID, callerID); err != nil {
		return 0, err
	}

	if _, err := s.audioRepo.FindByID(audioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAudioNotFound
		}
		return 0, fmt.Errorf("failed to find audio: %w", err)
	}

	position, err := s.playlistRepo.AddAudio(playlistID, audioID)
	if err != nil {
		return 0, fmt.Errorf("failed to add audio to playlist: %w", err)
	}

	return position, nil
}

// RemoveAudio removes an audio from the playlist and re-packs the
// remaining positions to 1..N.
func (s *PlaylistService) RemoveAudio(playlistID, audioID, callerID uint64) error {
	if _, err := s.findOwnedPlaylist(playlistID, callerID); err != nil {
		return err
	}

	if err := s.playlistRepo.RemoveAudio(playlistID, audioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAudioNotInPlaylist
		}
		return fmt.Errorf("failed to remove audio from playlist: %w", err)
	}

	return nil
}

func (s *PlaylistService) findOwnedPlaylist(playlistID, authorID uint64) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to find playlist: %w", err)
	}

	if playlist.AuthorID != authorID {
		return nil, ErrNotPlaylistAuthor
	}

	return playlist, nil
}
