package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
	// ContextKeySessionToken is the gin context key holding the presented session token.
	ContextKeySessionToken = "session_token"

	// HeaderUserID carries the caller's user ID on authenticated requests.
	HeaderUserID = "X-User-ID"

	MinPasswordLength = 8
	MinUsernameLength = 3

	// UserSearchLimit caps username substring search results.
	UserSearchLimit = 30

	DefaultPopularLimit = 10
	MaxPopularLimit     = 100
)
