package services

import (
	"testing"

	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/marblesound/marblesound-api/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUserService(t *testing.T, files FileRemover) (*UserService, *AuthService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	credRepo := repository.NewCredentialRepository(db)
	return NewUserService(userRepo, files), NewAuthService(userRepo, credRepo, bcrypt.MinCost), db
}

func TestUserService_Lookups(t *testing.T) {
	svc, _, db := setupUserService(t, nopRemover{})

	user := createTestUser(t, db, "alice")

	byID, err := svc.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)

	byName, err := svc.GetByUsername("alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, byName.ID)

	_, err = svc.GetByID(user.ID + 1)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetByUsername("Alice")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_SearchSubstring(t *testing.T) {
	svc, _, db := setupUserService(t, nopRemover{})

	createTestUser(t, db, "alice")
	createTestUser(t, db, "Alicia")
	createTestUser(t, db, "bob")

	users, err := svc.Search("ALI")
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = svc.Search("zzz")
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, _, db := setupUserService(t, nopRemover{})

	user := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	description := "making beats"
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Description: &description})
	require.NoError(t, err)
	require.Equal(t, "alice", updated.Username)
	require.NotNil(t, updated.Description)
	require.Equal(t, "making beats", *updated.Description)

	taken := "bob"
	_, err = svc.UpdateProfile(user.ID, UpdateProfileInput{Username: &taken})
	require.ErrorIs(t, err, ErrUsernameTaken)

	short := "al"
	_, err = svc.UpdateProfile(user.ID, UpdateProfileInput{Username: &short})
	require.ErrorIs(t, err, ErrUsernameTooShort)

	// Re-submitting your own username is not a collision.
	same := "alice"
	_, err = svc.UpdateProfile(user.ID, UpdateProfileInput{Username: &same})
	require.NoError(t, err)
}

func TestUserService_UpdateAvatarDeletesPrevious(t *testing.T) {
	remover := &recordingRemover{}
	svc, _, db := setupUserService(t, remover)

	user := createTestUser(t, db, "alice")

	updated, err := svc.UpdateAvatar(user.ID, "avatars/first.png")
	require.NoError(t, err)
	require.NotNil(t, updated.Avatar)
	require.Empty(t, remover.deleted)

	updated, err = svc.UpdateAvatar(user.ID, "avatars/second.png")
	require.NoError(t, err)
	require.Equal(t, "avatars/second.png", *updated.Avatar)
	require.Equal(t, []string{"avatars/first.png"}, remover.deleted)
}

func TestUserService_DeleteRemovesCredentialAndFavorites(t *testing.T) {
	remover := &recordingRemover{}
	svc, authSvc, db := setupUserService(t, remover)

	user, _, err := authSvc.Register(RegisterInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	avatar := "avatars/alice.png"
	user.Avatar = &avatar
	require.NoError(t, db.Save(user).Error)

	other := createTestUser(t, db, "bob")
	playlist := &models.Playlist{Name: "Mix", AuthorID: other.ID}
	require.NoError(t, db.Create(playlist).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: user.ID, PlaylistID: &playlist.ID}).Error)

	require.NoError(t, svc.Delete(user.ID))

	var credCount, favCount int64
	require.NoError(t, db.Model(&models.Credential{}).Where("user_id = ?", user.ID).Count(&credCount).Error)
	require.NoError(t, db.Model(&models.Favorite{}).Where("user_id = ?", user.ID).Count(&favCount).Error)
	require.Zero(t, credCount)
	require.Zero(t, favCount)

	_, err = svc.GetByID(user.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
	require.Equal(t, []string{"avatars/alice.png"}, remover.deleted)

	require.ErrorIs(t, svc.Delete(user.ID), ErrUserNotFound)
}
