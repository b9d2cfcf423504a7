package repository

import (
	"sort"

	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// GormPlaylistRepository is a GORM implementation of PlaylistRepository
type GormPlaylistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository creates a new PlaylistRepository
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &GormPlaylistRepository{db: db}
}

// Create creates a new playlist
func (r *GormPlaylistRepository) Create(playlist *models.Playlist) error {
	return r.db.Create(playlist).Error
}

// FindByID finds a playlist by ID; with withAudios the membership rows
// are loaded in position order together with their audio projections.
func (r *GormPlaylistRepository) FindByID(id uint64, withAudios bool) (*models.Playlist, error) {
	var playlist models.Playlist
	query := r.db

	if withAudios {
		query = query.
			Preload("Audios", func(db *gorm.DB) *gorm.DB {
				return db.Order("position ASC")
			}).
			Preload("Audios.Audio").
			Preload("Audios.Audio.Key").
			Preload("Audios.Audio.Instrument").
			Preload("Audios.Audio.Author").
			Preload("Audios.Audio.Genres.Genre")
	}

	if err := query.First(&playlist, id).Error; err != nil {
		return nil, err
	}

	return &playlist, nil
}

// Update updates a playlist
func (r *GormPlaylistRepository) Update(playlist *models.Playlist) error {
	return r.db.Omit("Author", "Audios").Save(playlist).Error
}

// Delete removes the playlist's membership rows, its favorites and the
// playlist row in one transaction.
func (r *GormPlaylistRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistAudio{}).Error; err != nil {
			return err
		}

		if err := tx.Where("playlist_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Playlist{}, id).Error
	})
}

// AddAudio appends the audio at the end of the playlist. Positions only
// grow on insert; freed slots are reclaimed by the re-pack on removal.
func (r *GormPlaylistRepository) AddAudio(playlistID, audioID uint64) (int, error) {
	var position int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var maxPosition int
		if err := tx.Model(&models.PlaylistAudio{}).
			Where("playlist_id = ?", playlistID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}

		entry := models.PlaylistAudio{
			PlaylistID: playlistID,
			AudioID:    audioID,
			Position:   maxPosition + 1,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		position = entry.Position
		return nil
	})
	return position, err
}

// RemoveAudio deletes the membership row and re-packs the remaining
// positions to 1..N in their existing relative order.
func (r *GormPlaylistRepository) RemoveAudio(playlistID, audioID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("playlist_id = ? AND audio_id = ?", playlistID, audioID).
			Delete(&models.PlaylistAudio{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return repackPlaylist(tx, playlistID)
	})
}

// Popular returns up to limit playlists ranked by favorite count
// descending, ties broken by lowest ID.
func (r *GormPlaylistRepository) Popular(limit int) ([]PlaylistWithFavorites, error) {
	var playlists []models.Playlist
	if err := r.db.Preload("Author").Order("playlists.id ASC").Find(&playlists).Error; err != nil {
		return nil, err
	}

	results := make([]PlaylistWithFavorites, len(playlists))
	if len(playlists) > 0 {
		ids := lo.Map(playlists, func(p models.Playlist, _ int) uint64 { return p.ID })

		type favCount struct {
			TargetID uint64
			Count    int64
		}
		var counts []favCount
		if err := r.db.Model(&models.Favorite{}).
			Select("playlist_id AS target_id, COUNT(*) AS count").
			Where("playlist_id IN ?", ids).
			Group("playlist_id").
			Scan(&counts).Error; err != nil {
			return nil, err
		}

		countByID := make(map[uint64]int64, len(counts))
		for _, c := range counts {
			countByID[c.TargetID] = c.Count
		}

		for i, playlist := range playlists {
			results[i] = PlaylistWithFavorites{Playlist: playlist, FavoriteCount: countByID[playlist.ID]}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FavoriteCount > results[j].FavoriteCount
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// repackPlaylist renumbers a playlist's membership rows to a dense
// ascending 1..N sequence, preserving their relative order.
func repackPlaylist(tx *gorm.DB, playlistID uint64) error {
	var entries []models.PlaylistAudio
	if err := tx.Where("playlist_id = ?", playlistID).
		Order("position ASC").
		Find(&entries).Error; err != nil {
		return err
	}

	for i, entry := range entries {
		want := i + 1
		if entry.Position == want {
			continue
		}
		if err := tx.Model(&models.PlaylistAudio{}).
			Where("id = ?", entry.ID).
			Update("position", want).Error; err != nil {
			return err
		}
	}

	return nil
}
