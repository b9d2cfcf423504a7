package models

import "time"

type Audio struct {
	ID           uint64   `gorm:"primarykey" json:"id"`
	Title        string   `gorm:"not null" json:"title"`
	File         string   `gorm:"type:varchar(2048);not null" json:"-"`
	Cover        *string  `gorm:"type:varchar(2048)" json:"cover"`
	KeyID        *uint64  `gorm:"index" json:"-"`
	InstrumentID uint64   `gorm:"index;not null" json:"-"`
	Bpm          *int     `json:"bpm"`
	IsLoop       bool     `gorm:"not null;default:false" json:"is_loop"`
	AuthorID     uint64   `gorm:"index;not null" json:"author_id"`
	Duration     *float64 `json:"duration"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Key        *Key         `gorm:"foreignKey:KeyID" json:"-"`
	Instrument Instrument   `gorm:"foreignKey:InstrumentID" json:"-"`
	Author     User         `gorm:"foreignKey:AuthorID" json:"-"`
	Genres     []AudioGenre `gorm:"foreignKey:AudioID" json:"-"`
}
