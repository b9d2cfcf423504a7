package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepository_FindByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(7, "alice"))

	user, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	require.EqualValues(t, 7, user.ID)
	require.Equal(t, "alice", user.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsernameNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	_, err := repo.FindByUsername("nobody")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateWithCredentialRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnError(errors.New("duplicate entry"))
	mock.ExpectRollback()

	err := repo.CreateWithCredential(&models.User{Username: "alice"}, &models.Credential{PasswordHash: "x"})
	require.ErrorIs(t, err, ErrCreateUser)
	require.NoError(t, mock.ExpectationsWereMet())
}
