package models

// Credential holds the hashed secrets for a user. Exactly one row per
// user, created together with the user. A nil SessionHash means the
// user is logged out; a non-nil hash is the single valid session token.
type Credential struct {
	UserID       uint64  `gorm:"primarykey" json:"-"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	SessionHash  *string `gorm:"type:varchar(255)" json:"-"`
}
