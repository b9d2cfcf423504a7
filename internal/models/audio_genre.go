package models

// AudioGenre is a join row linking an audio to one of its genres.
type AudioGenre struct {
	ID      uint64 `gorm:"primarykey" json:"-"`
	AudioID uint64 `gorm:"index;not null" json:"audio_id"`
	GenreID uint64 `gorm:"index;not null" json:"genre_id"`

	// Relations
	Genre Genre `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
}
