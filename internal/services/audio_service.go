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
	ErrAudioNotFound      = errors.New("audio not found")
	ErrInstrumentNotFound = errors.New("instrument not found")
	ErrGenreNotFound      = errors.New("genre not found")
	ErrTitleRequired      = errors.New("title is required")
)

// AudioService handles audio catalog business logic: vocabulary
// resolution, duration enrichment and the genre join rows.
type AudioService struct {
	audioRepo repository.AudioRepository
	vocabRepo repository.VocabularyRepository
	files     FileRemover
	probe     DurationProber
}

// NewAudioService creates a new AudioService. probe may be nil, in
// which case durations are never recorded.
func NewAudioService(audioRepo repository.AudioRepository, vocabRepo repository.VocabularyRepository, files FileRemover, probe DurationProber) *AudioService {
	return &AudioService{
		audioRepo: audioRepo,
		vocabRepo: vocabRepo,
		files:     files,
		probe:     probe,
	}
}

// CreateAudioInput represents input for creating an audio. FilePath and
// CoverPath are storage paths written by the transport layer.
type CreateAudioInput struct {
	AuthorID       uint64
	Title          string
	FilePath       string
	CoverPath      *string
	InstrumentName string
	KeyName        *string
	Bpm            *int
	IsLoop         bool
	GenreNames     []string
}

// CreateAudio resolves the vocabularies, probes the duration and
// persists the audio with its genre links in one transaction. An
// unknown genre aborts the whole operation; a failed duration probe
// does not.
func (s *AudioService) CreateAudio(input CreateAudioInput) (*models.Audio, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	instrument, err := s.vocabRepo.FindInstrumentByName(input.InstrumentName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInstrumentNotFound, input.InstrumentName)
		}
		return nil, fmt.Errorf("failed to resolve instrument: %w", err)
	}

	audio := &models.Audio{
		Title:        strings.TrimSpace(input.Title),
		File:         input.FilePath,
		Cover:        input.CoverPath,
		InstrumentID: instrument.ID,
		Bpm:          input.Bpm,
		IsLoop:       input.IsLoop,
		AuthorID:     input.AuthorID,
	}

	if input.KeyName != nil && strings.TrimSpace(*input.KeyName) != "" {
		key, err := s.vocabRepo.FindOrCreateKey(strings.TrimSpace(*input.KeyName))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve key: %w", err)
		}
		audio.KeyID = &key.ID
	}

	genreIDs, err := s.resolveGenres(input.GenreNames)
	if err != nil {
		return nil, err
	}

	if s.probe != nil {
		if duration, ok := s.probe(input.FilePath); ok {
			audio.Duration = &duration
		}
	}

	if err := s.audioRepo.CreateWithGenres(audio, genreIDs); err != nil {
		return nil, fmt.Errorf("failed to create audio: %w", err)
	}

	return s.audioRepo.FindByID(audio.ID, "Key", "Instrument", "Author", "Genres.Genre")
}

// GetAudio returns an audio with its full projection.
func (s *AudioService) GetAudio(id uint64) (*models.Audio, error) {
	audio, err := s.audioRepo.FindByID(id, "Key", "Instrument", "Author", "Genres.Genre")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAudioNotFound
		}
		return nil, fmt.Errorf("failed to find audio: %w", err)
	}
	return audio, nil
}

// UpdateAudioInput represents a partial audio update. Nil fields are
// left unchanged; a non-nil GenreNames replaces the whole genre set.
type UpdateAudioInput struct {
	Title          *string
	Bpm            *int
	IsLoop         *bool
	KeyName        *string
	InstrumentName *string
	GenreNames     *[]string
}

// UpdateAudio applies the provided fields. Only the author may update
// an audio; a non-author sees the same error as a missing audio.
func (s *AudioService) UpdateAudio(audioID, authorID uint64, input UpdateAudioInput) (*models.Audio, error) {
	audio, err := s.findOwned(audioID, authorID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		audio.Title = strings.TrimSpace(*input.Title)
	}
	if input.Bpm != nil {
		audio.Bpm = input.Bpm
	}
	if input.IsLoop != nil {
		audio.IsLoop = *input.IsLoop
	}
	if input.InstrumentName != nil {
		instrument, err := s.vocabRepo.FindInstrumentByName(*input.InstrumentName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrInstrumentNotFound, *input.InstrumentName)
			}
			return nil, fmt.Errorf("failed to resolve instrument: %w", err)
		}
		audio.InstrumentID = instrument.ID
	}
	if input.KeyName != nil {
		key, err := s.vocabRepo.FindOrCreateKey(strings.TrimSpace(*input.KeyName))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve key: %w", err)
		}
		audio.KeyID = &key.ID
	}

	var genreIDs []uint64
	replaceGenres := false
	if input.GenreNames != nil {
		replaceGenres = true
		genreIDs, err = s.resolveGenres(*input.GenreNames)
		if err != nil {
			return nil, err
		}
	}

	if err := s.audioRepo.Update(audio, genreIDs, replaceGenres); err != nil {
		return nil, fmt.Errorf("failed to update audio: %w", err)
	}

	return s.audioRepo.FindByID(audio.ID, "Key", "Instrument", "Author", "Genres.Genre")
}

// DeleteAudio removes the audio with all rows referencing it in one
// transaction, then deletes its stored files best-effort.
func (s *AudioService) DeleteAudio(audioID, authorID uint64) error {
	audio, err := s.findOwned(audioID, authorID)
	if err != nil {
		return err
	}

	if err := s.audioRepo.Delete(audioID); err != nil {
		return fmt.Errorf("failed to delete audio: %w", err)
	}

	s.files.Delete(audio.File)
	if audio.Cover != nil {
		s.files.Delete(*audio.Cover)
	}

	return nil
}

// findOwned loads the audio and checks authorship. Per the API
// contract a foreign audio is indistinguishable from a missing one.
func (s *AudioService) findOwned(audioID, authorID uint64) (*models.Audio, error) {
	audio, err := s.audioRepo.FindByID(audioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAudioNotFound
		}
		return nil, fmt.Errorf("failed to find audio: %w", err)
	}

	if audio.AuthorID != authorID {
		return nil, ErrAudioNotFound
	}

	return audio, nil
}

func (s *AudioService) resolveGenres(names []string) ([]uint64, error) {
	genreIDs := make([]uint64, 0, len(names))
	for _, name := range names {
		genre, err := s.vocabRepo.FindGenreByName(name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrGenreNotFound, name)
			}
			return nil, fmt.Errorf("failed to resolve genre: %w", err)
		}
		genreIDs = append(genreIDs, genre.ID)
	}
	return genreIDs, nil
}
