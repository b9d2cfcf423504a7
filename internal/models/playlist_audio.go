package models

// PlaylistAudio is a join row placing an audio inside a playlist.
// Positions within a playlist form a dense ascending sequence starting
// at 1; removals re-pack the remaining rows.
type PlaylistAudio struct {
	ID         uint64 `gorm:"primarykey" json:"-"`
	PlaylistID uint64 `gorm:"index;not null" json:"playlist_id"`
	AudioID    uint64 `gorm:"index;not null" json:"audio_id"`
	Position   int    `gorm:"not null;default:0" json:"position"`

	// Relations
	Audio Audio `gorm:"foreignKey:AudioID" json:"audio,omitempty"`
}
