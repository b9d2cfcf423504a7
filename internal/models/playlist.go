package models

import "time"

type Playlist struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Cover     *string   `gorm:"type:varchar(2048)" json:"cover"`
	AuthorID  uint64    `gorm:"index;not null" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Author User            `gorm:"foreignKey:AuthorID" json:"-"`
	Audios []PlaylistAudio `gorm:"foreignKey:PlaylistID" json:"-"`
}
