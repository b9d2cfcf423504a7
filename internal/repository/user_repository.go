package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marblesound/marblesound-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateCredential is returned when creating a credential fails inside the registration transaction.
	ErrCreateCredential = errors.New("user repository: create credential failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithCredential creates a user and their credential row atomically.
func (r *GormUserRepository) CreateWithCredential(user *models.User, cred *models.Credential) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		cred.UserID = user.ID

		if err := tx.Create(cred).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateCredential, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by exact, case-sensitive username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchByUsername finds users whose username contains the fragment, case-insensitively
func (r *GormUserRepository) SearchByUsername(fragment string, limit int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + strings.ToLower(fragment) + "%"
	if err := r.db.Where("LOWER(username) LIKE ?", pattern).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes the user's favorites, credential and the user row atomically
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Credential{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
