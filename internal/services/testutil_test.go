package services

import (
	"testing"

	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Credential{},
		&models.Genre{},
		&models.Instrument{},
		&models.Key{},
		&models.Audio{},
		&models.AudioGenre{},
		&models.Playlist{},
		&models.PlaylistAudio{},
		&models.Favorite{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// nopRemover satisfies FileRemover for tests that don't care about files.
type nopRemover struct{}

func (nopRemover) Delete(string) {}

// recordingRemover captures best-effort file deletes for assertions.
type recordingRemover struct {
	deleted []string
}

func (r *recordingRemover) Delete(path string) {
	r.deleted = append(r.deleted, path)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestInstrument(t *testing.T, db *gorm.DB, name string) *models.Instrument {
	t.Helper()

	instrument := &models.Instrument{Name: name}
	require.NoError(t, db.Create(instrument).Error)
	return instrument
}

func createTestGenre(t *testing.T, db *gorm.DB, name string) *models.Genre {
	t.Helper()

	genre := &models.Genre{Name: name}
	require.NoError(t, db.Create(genre).Error)
	return genre
}
