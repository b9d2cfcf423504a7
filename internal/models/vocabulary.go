package models

// Genre, Instrument and Key are small reference vocabularies looked up
// case-insensitively by name. Instruments must pre-exist; keys are
// created on first use.

type Genre struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(128);not null" json:"name"`
}

type Instrument struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}

type Key struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}
