package models

// Favorite links a user to exactly one of an audio or a playlist.
type Favorite struct {
	ID         uint64  `gorm:"primarykey" json:"id"`
	UserID     uint64  `gorm:"index;not null" json:"user_id"`
	AudioID    *uint64 `gorm:"index" json:"audio_id"`
	PlaylistID *uint64 `gorm:"index" json:"playlist_id"`

	// Relations
	Audio    *Audio    `gorm:"foreignKey:AudioID" json:"-"`
	Playlist *Playlist `gorm:"foreignKey:PlaylistID" json:"-"`
}
