package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marblesound/marblesound-api/internal/constants"
	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/marblesound/marblesound-api/internal/repository"
	"gorm.io/gorm"
)

// UserService handles user directory business logic.
type UserService struct {
	userRepo repository.UserRepository
	files    FileRemover
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, files FileRemover) *UserService {
	return &UserService{
		userRepo: userRepo,
		files:    files,
	}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by exact username.
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Search finds users whose username contains the fragment,
// case-insensitively. The result is capped to keep scans bounded.
func (s *UserService) Search(fragment string) ([]models.User, error) {
	users, err := s.userRepo.SearchByUsername(fragment, constants.UserSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// UpdateProfileInput represents a partial profile update. Nil fields
// are left unchanged.
type UpdateProfileInput struct {
	Username    *string
	Description *string
}

// UpdateProfile applies the provided fields to the user's profile.
func (s *UserService) UpdateProfile(id uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if len(username) < constants.MinUsernameLength {
			return nil, ErrUsernameTooShort
		}

		existing, err := s.userRepo.FindByUsername(username)
		if err == nil && existing.ID != id {
			return nil, ErrUsernameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}

		user.Username = username
	}
	if input.Description != nil {
		user.Description = input.Description
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UpdateAvatar swaps the stored avatar path. The previous file is
// removed best-effort after the new path is persisted.
func (s *UserService) UpdateAvatar(id uint64, path string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	previous := user.Avatar
	user.Avatar = &path

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	if previous != nil && *previous != path {
		s.files.Delete(*previous)
	}

	return user, nil
}

// Delete removes the user, their credential row and their favorites.
// The caller's session must already be verified by the transport layer.
func (s *UserService) Delete(id uint64) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if user.Avatar != nil {
		s.files.Delete(*user.Avatar)
	}

	return nil
}
