package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marblesound/marblesound-api/internal/constants"
	"github.com/marblesound/marblesound-api/internal/logger"
	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/marblesound/marblesound-api/internal/repository"
	"github.com/marblesound/marblesound-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrWrongPassword        = errors.New("wrong password")
	ErrInvalidSession       = errors.New("invalid session")
	ErrUsernameTooShort     = errors.New("username too short")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService owns the credential lifecycle: password hashing, session
// token issuance, verification and invalidation. Only hashes are ever
// stored; a plaintext token leaves the service exactly once, in the
// Register/Login result.
type AuthService struct {
	userRepo repository.UserRepository
	credRepo repository.CredentialRepository
	cost     int
}

// NewAuthService creates a new AuthService. cost is the bcrypt cost
// used for both password and session-token hashes.
func NewAuthService(userRepo repository.UserRepository, credRepo repository.CredentialRepository, cost int) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		credRepo: credRepo,
		cost:     cost,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a user with their credential row and issues the
// first session token. The username check is a case-sensitive exact
// match; user and credential persist atomically or not at all.
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < constants.MinUsernameLength {
		return nil, "", ErrUsernameTooShort
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	token := utils.GenerateSessionToken()
	sessionHash, err := bcrypt.GenerateFromPassword([]byte(token), s.cost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	user := &models.User{Username: username}
	hash := string(sessionHash)
	cred := &models.Credential{
		PasswordHash: string(passwordHash),
		SessionHash:  &hash,
	}

	if err := s.userRepo.CreateWithCredential(user, cred); err != nil {
		logger.Log.Errorw("registration failed", "username", username, "error", err)
		return nil, "", ErrFailedToCreateUser
	}

	return user, token, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies the password and issues a new session token. The
// stored session hash is overwritten, which invalidates any previously
// issued token: there is at most one active session per user.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	cred, err := s.credRepo.FindByUserID(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrWrongPassword
	}

	token := utils.GenerateSessionToken()
	sessionHash, err := bcrypt.GenerateFromPassword([]byte(token), s.cost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	hash := string(sessionHash)
	if err := s.credRepo.UpdateSessionHash(user.ID, &hash); err != nil {
		return nil, "", fmt.Errorf("failed to store session: %w", err)
	}

	return user, token, nil
}

// VerifySession reports whether token is the user's current session
// token. "Not logged in" and "no such user" are normal false results,
// never errors. The bcrypt comparison is constant-time in the secret.
func (s *AuthService) VerifySession(userID uint64, token string) bool {
	cred, err := s.credRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warnw("session lookup failed", "user_id", userID, "error", err)
		}
		return false
	}

	if cred.SessionHash == nil {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(*cred.SessionHash), []byte(token)) == nil
}

// Logout clears the stored session hash. The presented token must still
// be valid; a second logout with the same token fails.
func (s *AuthService) Logout(userID uint64, token string) error {
	if !s.VerifySession(userID, token) {
		return ErrInvalidSession
	}

	if err := s.credRepo.UpdateSessionHash(userID, nil); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}
