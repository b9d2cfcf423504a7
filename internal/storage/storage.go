package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/marblesound/marblesound-api/internal/logger"
)

// Category selects the extension allow-list and the subdirectory a
// stored file lands in.
type Category string

const (
	CategoryAudioFile     Category = "audio"
	CategoryAudioCover    Category = "audio-covers"
	CategoryAvatar        Category = "avatars"
	CategoryPlaylistCover Category = "playlist-covers"
)

var (
	// ErrDisallowedExtension is returned when the original filename's
	// extension is not permitted for the category.
	ErrDisallowedExtension = errors.New("file extension not allowed")
	// ErrNotFound is returned when a stored path does not resolve to a file.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidPath is returned for paths that escape the storage root.
	ErrInvalidPath = errors.New("invalid file path")
)

var allowedExtensions = map[Category][]string{
	CategoryAudioFile:     {".wav", ".mp3", ".aiff"},
	CategoryAudioCover:    {".png", ".jpg", ".jpeg", ".webp"},
	CategoryAvatar:        {".png", ".jpg", ".jpeg", ".webp"},
	CategoryPlaylistCover: {".png", ".jpg", ".jpeg", ".webp"},
}

// Storage writes uploaded files under a root directory. Files are
// written once under a fresh random name and never overwritten.
type Storage struct {
	root string
}

// New creates a Storage rooted at dir, creating the category
// subdirectories if needed.
func New(dir string) (*Storage, error) {
	for category := range allowedExtensions {
		if err := os.MkdirAll(filepath.Join(dir, string(category)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	return &Storage{root: dir}, nil
}

// Store validates the extension of originalName against the category
// allow-list and writes src under a generated name. It returns the
// root-relative path to persist.
func (s *Storage) Store(category Category, originalName string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !extensionAllowed(category, ext) {
		return "", fmt.Errorf("%w: %q for %s", ErrDisallowedExtension, ext, category)
	}

	relPath := filepath.Join(string(category), uuid.NewString()+ext)
	dst, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return relPath, nil
}

// Resolve maps a stored relative path to an absolute path inside the
// root, rejecting anything that would escape it.
func (s *Storage) Resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(relPath)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", ErrInvalidPath
	}

	abs := filepath.Join(s.root, cleaned)
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", ErrNotFound
	}
	return abs, nil
}

// Delete removes a stored file best-effort. Failures are logged and
// never propagated; a stray file must not block the owning operation.
func (s *Storage) Delete(relPath string) {
	abs, err := s.Resolve(relPath)
	if err != nil {
		logger.Log.Warnw("skipping file delete", "path", relPath, "error", err)
		return
	}
	if err := os.Remove(abs); err != nil {
		logger.Log.Warnw("failed to delete file", "path", relPath, "error", err)
	}
}

func extensionAllowed(category Category, ext string) bool {
	for _, allowed := range allowedExtensions[category] {
		if ext == allowed {
			return true
		}
	}
	return false
}
