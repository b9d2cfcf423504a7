package services

import (
	"testing"

	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/marblesound/marblesound-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFavoriteService(t *testing.T) (*FavoriteService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	favoriteRepo := repository.NewFavoriteRepository(db)
	audioRepo := repository.NewAudioRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	return NewFavoriteService(favoriteRepo, audioRepo, playlistRepo), db
}

func TestFavoriteService_AddRequiresExactlyOneTarget(t *testing.T) {
	svc, db := setupFavoriteService(t)

	user := createTestUser(t, db, "alice")
	audio := createTestAudio(t, db, user.ID, "one")
	playlist := &models.Playlist{Name: "Mix", AuthorID: user.ID}
	require.NoError(t, db.Create(playlist).Error)

	_, err := svc.Add(user.ID, nil, nil)
	require.ErrorIs(t, err, ErrFavoriteTargetRequired)

	_, err = svc.Add(user.ID, &audio.ID, &playlist.ID)
	require.ErrorIs(t, err, ErrFavoriteTargetAmbiguous)
}

func TestFavoriteService_AddChecksTargetExists(t *testing.T) {
	svc, db := setupFavoriteService(t)

	user := createTestUser(t, db, "alice")

	missing := uint64(404)
	_, err := svc.Add(user.ID, &missing, nil)
	require.ErrorIs(t, err, ErrAudioNotFound)

	_, err = svc.Add(user.ID, nil, &missing)
	require.ErrorIs(t, err, ErrPlaylistNotFound)
}

func TestFavoriteService_AddRemoveLifecycle(t *testing.T) {
	svc, db := setupFavoriteService(t)

	user := createTestUser(t, db, "alice")
	audio := createTestAudio(t, db, user.ID, "one")
	playlist := &models.Playlist{Name: "Mix", AuthorID: user.ID}
	require.NoError(t, db.Create(playlist).Error)

	_, err := svc.Add(user.ID, &audio.ID, nil)
	require.NoError(t, err)
	_, err = svc.Add(user.ID, nil, &playlist.ID)
	require.NoError(t, err)

	favorites, err := svc.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 2)

	require.NoError(t, svc.Remove(user.ID, &audio.ID, nil))

	favorites, err = svc.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.NotNil(t, favorites[0].PlaylistID)

	// Removing the same target twice is a not-found, as is no target.
	require.ErrorIs(t, svc.Remove(user.ID, &audio.ID, nil), ErrFavoriteNotFound)
	require.ErrorIs(t, svc.Remove(user.ID, nil, nil), ErrFavoriteTargetRequired)
}

func TestFavoriteService_RemoveOnlyTouchesOwnRows(t *testing.T) {
	svc, db := setupFavoriteService(t)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	audio := createTestAudio(t, db, alice.ID, "one")

	_, err := svc.Add(alice.ID, &audio.ID, nil)
	require.NoError(t, err)
	_, err = svc.Add(bob.ID, &audio.ID, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(alice.ID, &audio.ID, nil))

	favorites, err := svc.ListForUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
}
