package utils

import "github.com/google/uuid"

// GenerateSessionToken returns a fresh opaque session token. Only a
// hash of it is ever persisted; the plaintext goes to the caller once.
func GenerateSessionToken() string {
	return uuid.NewString()
}
