package models

import "time"

type User struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Username    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Avatar      *string   `gorm:"type:varchar(2048)" json:"avatar"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Credential *Credential `gorm:"foreignKey:UserID" json:"-"`
	Audios     []Audio     `gorm:"foreignKey:AuthorID" json:"-"`
	Playlists  []Playlist  `gorm:"foreignKey:AuthorID" json:"-"`
	Favorites  []Favorite  `gorm:"foreignKey:UserID" json:"-"`
}
