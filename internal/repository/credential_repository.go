package repository

import (
	"github.com/marblesound/marblesound-api/internal/models"
	"gorm.io/gorm"
)

// GormCredentialRepository is a GORM implementation of CredentialRepository
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new CredentialRepository
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &GormCredentialRepository{db: db}
}

// FindByUserID finds the credential row for a user
func (r *GormCredentialRepository) FindByUserID(userID uint64) (*models.Credential, error) {
	var cred models.Credential
	if err := r.db.Where("user_id = ?", userID).First(&cred).Error; err != nil {
		return nil, err
	}
	return &cred, nil
}

// UpdateSessionHash replaces the stored session hash; nil clears it.
// Overwriting invalidates whatever token hashed to the previous value.
func (r *GormCredentialRepository) UpdateSessionHash(userID uint64, hash *string) error {
	result := r.db.Model(&models.Credential{}).
		Where("user_id = ?", userID).
		Update("session_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
