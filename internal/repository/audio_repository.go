package repository

import (
	"sort"
	"strings"

	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// audioPreloads loads everything the audio projection needs.
var audioPreloads = []string{"Key", "Instrument", "Author", "Genres.Genre"}

// GormAudioRepository is a GORM implementation of AudioRepository
type GormAudioRepository struct {
	db *gorm.DB
}

// NewAudioRepository creates a new AudioRepository
func NewAudioRepository(db *gorm.DB) AudioRepository {
	return &GormAudioRepository{db: db}
}

// CreateWithGenres creates the audio and one genre join row per genre ID
// in a single transaction: either everything persists or nothing does.
func (r *GormAudioRepository) CreateWithGenres(audio *models.Audio, genreIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(audio).Error; err != nil {
			return err
		}

		for _, genreID := range genreIDs {
			link := models.AudioGenre{AudioID: audio.ID, GenreID: genreID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds an audio by ID with optional preloading
func (r *GormAudioRepository) FindByID(id uint64, preload ...string) (*models.Audio, error) {
	var audio models.Audio
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&audio, id).Error; err != nil {
		return nil, err
	}

	return &audio, nil
}

// Update saves the audio and, when replaceGenres is set, swaps its genre
// join rows for the given set, all in one transaction. An empty set with
// replaceGenres leaves the audio without genres.
func (r *GormAudioRepository) Update(audio *models.Audio, genreIDs []uint64, replaceGenres bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Key", "Instrument", "Author", "Genres").Save(audio).Error; err != nil {
			return err
		}

		if !replaceGenres {
			return nil
		}

		if err := tx.Where("audio_id = ?", audio.ID).Delete(&models.AudioGenre{}).Error; err != nil {
			return err
		}

		for _, genreID := range genreIDs {
			link := models.AudioGenre{AudioID: audio.ID, GenreID: genreID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes everything referencing the audio and the audio row in
// one transaction. Playlists that contained it are re-packed so their
// positions stay dense.
func (r *GormAudioRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var playlistIDs []uint64
		if err := tx.Model(&models.PlaylistAudio{}).
			Where("audio_id = ?", id).
			Distinct().
			Pluck("playlist_id", &playlistIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("audio_id = ?", id).Delete(&models.AudioGenre{}).Error; err != nil {
			return err
		}

		if err := tx.Where("audio_id = ?", id).Delete(&models.PlaylistAudio{}).Error; err != nil {
			return err
		}

		if err := tx.Where("audio_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		for _, playlistID := range playlistIDs {
			if err := repackPlaylist(tx, playlistID); err != nil {
				return err
			}
		}

		return tx.Delete(&models.Audio{}, id).Error
	})
}

// Search returns audios matching the filter with their favorite counts.
// Results are ordered by audio ID ascending so repeated calls over
// unchanged data return the same sequence.
func (r *GormAudioRepository) Search(filter AudioFilter) ([]AudioWithFavorites, error) {
	query := r.db.Model(&models.Audio{})

	if filter.Title != nil {
		pattern := "%" + strings.ToLower(*filter.Title) + "%"
		query = query.Where("LOWER(audios.title) LIKE ?", pattern)
	}
	if filter.BpmMin != nil {
		query = query.Where("audios.bpm >= ?", *filter.BpmMin)
	}
	if filter.BpmMax != nil {
		query = query.Where("audios.bpm <= ?", *filter.BpmMax)
	}
	if len(filter.Instruments) > 0 {
		sub := r.db.Model(&models.Instrument{}).
			Select("id").
			Where("LOWER(name) IN ?", lowered(filter.Instruments))
		query = query.Where("audios.instrument_id IN (?)", sub)
	}
	if len(filter.Keys) > 0 {
		sub := r.db.Model(&models.Key{}).
			Select("id").
			Where("LOWER(name) IN ?", lowered(filter.Keys))
		query = query.Where("audios.key_id IN (?)", sub)
	}
	if len(filter.Genres) > 0 {
		genreSub := r.db.Model(&models.Genre{}).
			Select("id").
			Where("LOWER(name) IN ?", lowered(filter.Genres))
		linkSub := r.db.Model(&models.AudioGenre{}).
			Select("audio_id").
			Where("genre_id IN (?)", genreSub)
		query = query.Where("audios.id IN (?)", linkSub)
	}
	if filter.IsLoop != nil {
		query = query.Where("audios.is_loop = ?", *filter.IsLoop)
	}

	var audios []models.Audio
	for _, p := range audioPreloads {
		query = query.Preload(p)
	}
	if err := query.Order("audios.id ASC").Find(&audios).Error; err != nil {
		return nil, err
	}

	return r.attachFavoriteCounts(audios)
}

// Popular returns up to limit audios ranked by favorite count
// descending, ties broken by lowest ID.
func (r *GormAudioRepository) Popular(limit int) ([]AudioWithFavorites, error) {
	query := r.db.Model(&models.Audio{})
	for _, p := range audioPreloads {
		query = query.Preload(p)
	}

	var audios []models.Audio
	if err := query.Order("audios.id ASC").Find(&audios).Error; err != nil {
		return nil, err
	}

	results, err := r.attachFavoriteCounts(audios)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FavoriteCount > results[j].FavoriteCount
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *GormAudioRepository) attachFavoriteCounts(audios []models.Audio) ([]AudioWithFavorites, error) {
	results := make([]AudioWithFavorites, len(audios))
	if len(audios) == 0 {
		return results, nil
	}

	ids := lo.Map(audios, func(a models.Audio, _ int) uint64 { return a.ID })

	type favCount struct {
		TargetID uint64
		Count    int64
	}
	var counts []favCount
	if err := r.db.Model(&models.Favorite{}).
		Select("audio_id AS target_id, COUNT(*) AS count").
		Where("audio_id IN ?", ids).
		Group("audio_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	countByID := make(map[uint64]int64, len(counts))
	for _, c := range counts {
		countByID[c.TargetID] = c.Count
	}

	for i, audio := range audios {
		results[i] = AudioWithFavorites{Audio: audio, FavoriteCount: countByID[audio.ID]}
	}
	return results, nil
}

func lowered(names []string) []string {
	return lo.Map(names, func(name string, _ int) string {
		return strings.ToLower(name)
	})
}
