package services

import (
	"testing"

	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/marblesound/marblesound-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSearchService(t *testing.T) (*SearchService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	audioRepo := repository.NewAudioRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	return NewSearchService(audioRepo, playlistRepo), db
}

// seedSearchCatalog creates three audios by one author:
//
//	"Night Drive" guitar, lofi, 120 bpm, loop, key Am
//	"Day Drive"   guitar, jazz, 95 bpm
//	"Sunrise"     piano, lofi, 120 bpm
func seedSearchCatalog(t *testing.T, db *gorm.DB) (author *models.User, audios []*models.Audio) {
	t.Helper()

	author = createTestUser(t, db, "alice")
	guitar := createTestInstrument(t, db, "guitar")
	piano := createTestInstrument(t, db, "piano")
	lofi := createTestGenre(t, db, "lofi")
	jazz := createTestGenre(t, db, "jazz")
	key := &models.Key{Name: "Am"}
	require.NoError(t, db.Create(key).Error)

	bpm120, bpm95 := 120, 95
	rows := []struct {
		title      string
		instrument *models.Instrument
		genre      *models.Genre
		bpm        *int
		isLoop     bool
		keyID      *uint64
	}{
		{"Night Drive", guitar, lofi, &bpm120, true, &key.ID},
		{"Day Drive", guitar, jazz, &bpm95, false, nil},
		{"Sunrise", piano, lofi, &bpm120, false, nil},
	}

	for _, row := range rows {
		audio := &models.Audio{
			Title:        row.title,
			File:         "audio/" + row.title + ".wav",
			InstrumentID: row.instrument.ID,
			KeyID:        row.keyID,
			Bpm:          row.bpm,
			IsLoop:       row.isLoop,
			AuthorID:     author.ID,
		}
		require.NoError(t, db.Create(audio).Error)
		require.NoError(t, db.Create(&models.AudioGenre{AudioID: audio.ID, GenreID: row.genre.ID}).Error)
		audios = append(audios, audio)
	}
	return author, audios
}

func titlesOf(results []repository.AudioWithFavorites) []string {
	titles := make([]string, 0, len(results))
	for _, r := range results {
		titles = append(titles, r.Audio.Title)
	}
	return titles
}

func TestSearchService_RequiresAFilter(t *testing.T) {
	svc, _ := setupSearchService(t)

	_, err := svc.SearchAudios(repository.AudioFilter{})
	require.ErrorIs(t, err, ErrNoSearchFilters)
}

func TestSearchService_TitleSubstring(t *testing.T) {
	svc, db := setupSearchService(t)
	seedSearchCatalog(t, db)

	title := "drive"
	results, err := svc.SearchAudios(repository.AudioFilter{Title: &title})
	require.NoError(t, err)
	require.Equal(t, []string{"Night Drive", "Day Drive"}, titlesOf(results))
}

func TestSearchService_BpmRange(t *testing.T) {
	svc, db := setupSearchService(t)
	seedSearchCatalog(t, db)

	// min == max matches the exact tempo.
	bpm := 120
	results, err := svc.SearchAudios(repository.AudioFilter{BpmMin: &bpm, BpmMax: &bpm})
	require.NoError(t, err)
	require.Equal(t, []string{"Night Drive", "Sunrise"}, titlesOf(results))

	min := 100
	results, err = svc.SearchAudios(repository.AudioFilter{BpmMin: &min})
	require.NoError(t, err)
	require.Equal(t, []string{"Night Drive", "Sunrise"}, titlesOf(results))
}

func TestSearchService_CombinedFilters(t *testing.T) {
	svc, db := setupSearchService(t)
	seedSearchCatalog(t, db)

	// Filters AND together; vocabulary names are case-insensitive.
	results, err := svc.SearchAudios(repository.AudioFilter{
		Instruments: []string{"GUITAR"},
		Genres:      []string{"Lofi"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Night Drive"}, titlesOf(results))

	isLoop := true
	results, err = svc.SearchAudios(repository.AudioFilter{IsLoop: &isLoop})
	require.NoError(t, err)
	require.Equal(t, []string{"Night Drive"}, titlesOf(results))

	results, err = svc.SearchAudios(repository.AudioFilter{Keys: []string{"am"}})
	require.NoError(t, err)
	require.Equal(t, []string{"Night Drive"}, titlesOf(results))

	results, err = svc.SearchAudios(repository.AudioFilter{Instruments: []string{"theremin"}})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchService_SearchCarriesFavoriteCounts(t *testing.T) {
	svc, db := setupSearchService(t)
	_, audios := seedSearchCatalog(t, db)

	fan := createTestUser(t, db, "bob")
	require.NoError(t, db.Create(&models.Favorite{UserID: fan.ID, AudioID: &audios[0].ID}).Error)

	title := "night"
	results, err := svc.SearchAudios(repository.AudioFilter{Title: &title})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.EqualValues(t, 1, results[0].FavoriteCount)
}

func TestSearchService_PopularAudiosOrdering(t *testing.T) {
	svc, db := setupSearchService(t)
	_, audios := seedSearchCatalog(t, db)

	fans := []*models.User{
		createTestUser(t, db, "fan1"),
		createTestUser(t, db, "fan2"),
		createTestUser(t, db, "fan3"),
	}
	favorite := func(user *models.User, audio *models.Audio) {
		require.NoError(t, db.Create(&models.Favorite{UserID: user.ID, AudioID: &audio.ID}).Error)
	}
	// Night Drive: 3, Day Drive: 1, Sunrise: 3.
	for _, fan := range fans {
		favorite(fan, audios[0])
		favorite(fan, audios[2])
	}
	favorite(fans[0], audios[1])

	results, err := svc.PopularAudios(2)
	require.NoError(t, err)
	// Ties resolve to the lower ID.
	require.Equal(t, []string{"Night Drive", "Sunrise"}, titlesOf(results))
	require.EqualValues(t, 3, results[0].FavoriteCount)
	require.EqualValues(t, 3, results[1].FavoriteCount)

	results, err = svc.PopularAudios(0)
	require.NoError(t, err)
	require.Equal(t, []string{"Night Drive", "Sunrise", "Day Drive"}, titlesOf(results))
}

func TestSearchService_PopularPlaylists(t *testing.T) {
	svc, db := setupSearchService(t)

	author := createTestUser(t, db, "alice")
	fan := createTestUser(t, db, "bob")

	quiet := &models.Playlist{Name: "Quiet", AuthorID: author.ID}
	loud := &models.Playlist{Name: "Loud", AuthorID: author.ID}
	require.NoError(t, db.Create(quiet).Error)
	require.NoError(t, db.Create(loud).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: fan.ID, PlaylistID: &loud.ID}).Error)

	results, err := svc.PopularPlaylists(10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "Loud", results[0].Playlist.Name)
	require.EqualValues(t, 1, results[0].FavoriteCount)
	require.Equal(t, "Quiet", results[1].Playlist.Name)
	require.EqualValues(t, 0, results[1].FavoriteCount)
}
