package repository

import (
	"github.com/marblesound/marblesound-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithCredential creates a user and their credential row atomically
	CreateWithCredential(user *models.User, cred *models.Credential) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by exact username
	FindByUsername(username string) (*models.User, error)

	// SearchByUsername finds users whose username contains the fragment,
	// case-insensitively, capped at limit
	SearchByUsername(fragment string, limit int) ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete removes the user's favorites, credential and the user row atomically
	Delete(id uint64) error
}

// CredentialRepository defines the interface for credential data access
type CredentialRepository interface {
	// FindByUserID finds the credential row for a user
	FindByUserID(userID uint64) (*models.Credential, error)

	// UpdateSessionHash replaces the stored session hash; nil clears it
	UpdateSessionHash(userID uint64, hash *string) error
}

// VocabularyRepository defines the interface for the reference vocabularies
type VocabularyRepository interface {
	// FindGenreByName finds a genre by case-insensitive exact name
	FindGenreByName(name string) (*models.Genre, error)

	// FindInstrumentByName finds an instrument by case-insensitive exact name
	FindInstrumentByName(name string) (*models.Instrument, error)

	// FindOrCreateKey finds a key by case-insensitive exact name, creating it if absent
	FindOrCreateKey(name string) (*models.Key, error)

	// ListGenres returns all genres
	ListGenres() ([]models.Genre, error)

	// ListInstruments returns all instruments
	ListInstruments() ([]models.Instrument, error)

	// ListKeys returns all keys
	ListKeys() ([]models.Key, error)
}

// AudioFilter holds the search filters for audios. All provided
// filters are combined with AND; text matching is case-insensitive.
type AudioFilter struct {
	Title       *string
	BpmMin      *int
	BpmMax      *int
	Instruments []string
	Genres      []string
	Keys        []string
	IsLoop      *bool
}

// Empty reports whether no filter is set.
func (f AudioFilter) Empty() bool {
	return f.Title == nil && f.BpmMin == nil && f.BpmMax == nil &&
		len(f.Instruments) == 0 && len(f.Genres) == 0 && len(f.Keys) == 0 &&
		f.IsLoop == nil
}

// AudioWithFavorites pairs an audio with its current favorite count.
type AudioWithFavorites struct {
	Audio         models.Audio
	FavoriteCount int64
}

// PlaylistWithFavorites pairs a playlist with its current favorite count.
type PlaylistWithFavorites struct {
	Playlist      models.Playlist
	FavoriteCount int64
}

// AudioRepository defines the interface for audio data access
type AudioRepository interface {
	// CreateWithGenres creates the audio and one genre join row per genre ID atomically
	CreateWithGenres(audio *models.Audio, genreIDs []uint64) error

	// FindByID finds an audio by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Audio, error)

	// Update saves the audio and, when genreIDs is non-nil, replaces its
	// genre join rows, all in one transaction
	Update(audio *models.Audio, genreIDs []uint64, replaceGenres bool) error

	// Delete removes the audio's genre links, playlist memberships and
	// favorites, re-packs the affected playlists, and deletes the audio
	// row, all in one transaction
	Delete(id uint64) error

	// Search returns audios matching the filter with their favorite
	// counts, ordered by audio ID ascending
	Search(filter AudioFilter) ([]AudioWithFavorites, error)

	// Popular returns up to limit audios ordered by favorite count
	// descending, ties broken by lowest ID
	Popular(limit int) ([]AudioWithFavorites, error)
}

// PlaylistRepository defines the interface for playlist data access
type PlaylistRepository interface {
	// Create creates a new playlist
	Create(playlist *models.Playlist) error

	// FindByID finds a playlist by ID; members are loaded in position order
	FindByID(id uint64, withAudios bool) (*models.Playlist, error)

	// Update updates a playlist
	Update(playlist *models.Playlist) error

	// Delete removes the playlist's membership rows and favorites and
	// the playlist row, all in one transaction
	Delete(id uint64) error

	// AddAudio appends the audio at position max+1 (1 if empty) and
	// returns the assigned position
	AddAudio(playlistID, audioID uint64) (int, error)

	// RemoveAudio deletes the membership row and re-packs remaining
	// positions to a dense 1..N sequence, all in one transaction.
	// Returns gorm.ErrRecordNotFound if the audio is not a member.
	RemoveAudio(playlistID, audioID uint64) error

	// Popular returns up to limit playlists ordered by favorite count
	// descending, ties broken by lowest ID
	Popular(limit int) ([]PlaylistWithFavorites, error)
}

// FavoriteRepository defines the interface for favorite data access
type FavoriteRepository interface {
	// Create creates a favorite link
	Create(favorite *models.Favorite) error

	// Delete removes favorites matching the provided target identifiers.
	// Returns gorm.ErrRecordNotFound if no row matched.
	Delete(userID uint64, audioID, playlistID *uint64) error

	// ListByUser returns a user's favorites with their targets loaded
	ListByUser(userID uint64) ([]models.Favorite, error)
}
