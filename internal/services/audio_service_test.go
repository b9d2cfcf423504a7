package services

import (
	"testing"

	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/marblesound/marblesound-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAudioService(t *testing.T, files FileRemover, probe DurationProber) (*AudioService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	audioRepo := repository.NewAudioRepository(db)
	vocabRepo := repository.NewVocabularyRepository(db)
	return NewAudioService(audioRepo, vocabRepo, files, probe), db
}

func TestAudioService_CreateAudio(t *testing.T) {
	probe := func(string) (float64, bool) { return 3.5, true }
	svc, db := setupAudioService(t, nopRemover{}, probe)

	author := createTestUser(t, db, "alice")
	createTestInstrument(t, db, "guitar")
	createTestGenre(t, db, "lofi")
	createTestGenre(t, db, "jazz")

	key := "C# minor"
	bpm := 120
	audio, err := svc.CreateAudio(CreateAudioInput{
		AuthorID:       author.ID,
		Title:          "Night Drive",
		FilePath:       "audio/night-drive.wav",
		InstrumentName: "Guitar",
		KeyName:        &key,
		Bpm:            &bpm,
		IsLoop:         true,
		GenreNames:     []string{"Lofi", "JAZZ"},
	})
	require.NoError(t, err)
	require.Equal(t, "Night Drive", audio.Title)
	require.Equal(t, author.ID, audio.AuthorID)
	require.NotNil(t, audio.Duration)
	require.Equal(t, 3.5, *audio.Duration)
	require.Equal(t, "guitar", audio.Instrument.Name)
	require.Len(t, audio.Genres, 2)

	// Key names are created on first use.
	var keyCount int64
	require.NoError(t, db.Model(&models.Key{}).Where("name = ?", "C# minor").Count(&keyCount).Error)
	require.EqualValues(t, 1, keyCount)
}

func TestAudioService_CreateAudioUnknownInstrument(t *testing.T) {
	svc, db := setupAudioService(t, nopRemover{}, nil)

	author := createTestUser(t, db, "alice")

	_, err := svc.CreateAudio(CreateAudioInput{
		AuthorID:       author.ID,
		Title:          "Night Drive",
		FilePath:       "audio/night-drive.wav",
		InstrumentName: "theremin",
	})
	require.ErrorIs(t, err, ErrInstrumentNotFound)
}

func TestAudioService_CreateAudioUnknownGenreLeavesNothingBehind(t *testing.T) {
	svc, db := setupAudioService(t, nopRemover{}, nil)

	author := createTestUser(t, db, "alice")
	createTestInstrument(t, db, "guitar")
	createTestGenre(t, db, "lofi")

	_, err := svc.CreateAudio(CreateAudioInput{
		AuthorID:       author.ID,
		Title:          "Night Drive",
		FilePath:       "audio/night-drive.wav",
		InstrumentName: "guitar",
		GenreNames:     []string{"lofi", "vaporwave"},
	})
	require.ErrorIs(t, err, ErrGenreNotFound)

	// The failed create must not leave a partial audio or links around.
	var audioCount, linkCount int64
	require.NoError(t, db.Model(&models.Audio{}).Count(&audioCount).Error)
	require.NoError(t, db.Model(&models.AudioGenre{}).Count(&linkCount).Error)
	require.Zero(t, audioCount)
	require.Zero(t, linkCount)
}

func TestAudioService_UpdateAudioReplacesGenres(t *testing.T) {
	svc, db := setupAudioService(t, nopRemover{}, nil)

	author := createTestUser(t, db, "alice")
	createTestInstrument(t, db, "guitar")
	createTestGenre(t, db, "lofi")
	createTestGenre(t, db, "jazz")
	house := createTestGenre(t, db, "house")

	audio, err := svc.CreateAudio(CreateAudioInput{
		AuthorID:       author.ID,
		Title:          "Night Drive",
		FilePath:       "audio/night-drive.wav",
		InstrumentName: "guitar",
		GenreNames:     []string{"lofi", "jazz"},
	})
	require.NoError(t, err)

	genres := []string{"house"}
	updated, err := svc.UpdateAudio(audio.ID, author.ID, UpdateAudioInput{GenreNames: &genres})
	require.NoError(t, err)
	require.Len(t, updated.Genres, 1)
	require.Equal(t, house.ID, updated.Genres[0].GenreID)

	// The old links are gone, not just superseded.
	var linkCount int64
	require.NoError(t, db.Model(&models.AudioGenre{}).Where("audio_id = ?", audio.ID).Count(&linkCount).Error)
	require.EqualValues(t, 1, linkCount)
}

func TestAudioService_UpdateAudioPartial(t *testing.T) {
	svc, db := setupAudioService(t, nopRemover{}, nil)

	author := createTestUser(t, db, "alice")
	createTestInstrument(t, db, "guitar")

	bpm := 90
	audio, err := svc.CreateAudio(CreateAudioInput{
		AuthorID:       author.ID,
		Title:          "Night Drive",
		FilePath:       "audio/night-drive.wav",
		InstrumentName: "guitar",
		Bpm:            &bpm,
	})
	require.NoError(t, err)

	title := "Day Drive"
	updated, err := svc.UpdateAudio(audio.ID, author.ID, UpdateAudioInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Day Drive", updated.Title)
	require.NotNil(t, updated.Bpm)
	require.Equal(t, 90, *updated.Bpm)
	require.Equal(t, "guitar", updated.Instrument.Name)
}

func TestAudioService_UpdateAudioForeignAuthor(t *testing.T) {
	svc, db := setupAudioService(t, nopRemover{}, nil)

	author := createTestUser(t, db, "alice")
	other := createTestUser(t, db, "bob")
	createTestInstrument(t, db, "guitar")

	audio, err := svc.CreateAudio(CreateAudioInput{
		AuthorID:       author.ID,
		Title:          "Night Drive",
		FilePath:       "audio/night-drive.wav",
		InstrumentName: "guitar",
	})
	require.NoError(t, err)

	// A foreign audio looks exactly like a missing one.
	title := "Stolen"
	_, err = svc.UpdateAudio(audio.ID, other.ID, UpdateAudioInput{Title: &title})
	require.ErrorIs(t, err, ErrAudioNotFound)
}

func TestAudioService_DeleteAudioCascades(t *testing.T) {
	remover := &recordingRemover{}
	svc, db := setupAudioService(t, remover, nil)

	author := createTestUser(t, db, "alice")
	fan := createTestUser(t, db, "bob")
	createTestInstrument(t, db, "guitar")

	cover := "covers/night-drive.png"
	audio, err := svc.CreateAudio(CreateAudioInput{
		AuthorID:       author.ID,
		Title:          "Night Drive",
		FilePath:       "audio/night-drive.wav",
		CoverPath:      &cover,
		InstrumentName: "guitar",
	})
	require.NoError(t, err)

	keeper, err := svc.CreateAudio(CreateAudioInput{
		AuthorID:       author.ID,
		Title:          "Sunrise",
		FilePath:       "audio/sunrise.wav",
		InstrumentName: "guitar",
	})
	require.NoError(t, err)

	playlist := &models.Playlist{Name: "Mix", AuthorID: author.ID}
	require.NoError(t, db.Create(playlist).Error)
	playlistRepo := repository.NewPlaylistRepository(db)
	_, err = playlistRepo.AddAudio(playlist.ID, audio.ID)
	require.NoError(t, err)
	_, err = playlistRepo.AddAudio(playlist.ID, keeper.ID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Favorite{UserID: fan.ID, AudioID: &audio.ID}).Error)

	require.NoError(t, svc.DeleteAudio(audio.ID, author.ID))

	// Every referencing row is gone.
	var favCount, memberCount int64
	require.NoError(t, db.Model(&models.Favorite{}).Where("audio_id = ?", audio.ID).Count(&favCount).Error)
	require.NoError(t, db.Model(&models.PlaylistAudio{}).Where("audio_id = ?", audio.ID).Count(&memberCount).Error)
	require.Zero(t, favCount)
	require.Zero(t, memberCount)

	_, err = svc.GetAudio(audio.ID)
	require.ErrorIs(t, err, ErrAudioNotFound)

	// The surviving member was re-packed to position 1.
	var remaining []models.PlaylistAudio
	require.NoError(t, db.Where("playlist_id = ?", playlist.ID).Order("position ASC").Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, keeper.ID, remaining[0].AudioID)
	require.Equal(t, 1, remaining[0].Position)

	// Stored files are deleted after the rows.
	require.ElementsMatch(t, []string{"audio/night-drive.wav", "covers/night-drive.png"}, remover.deleted)
}
