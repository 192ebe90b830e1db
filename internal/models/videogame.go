package models

import (
	"time"
)

// Videogame is a single record in a user's collection. Writing the owner in
// the same INSERT as the record keeps create-and-link atomic.
type Videogame struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	UserID      uint64 `gorm:"not null;index"`
	Name        string `gorm:"size:255;not null"`
	Genre       StringList
	Platform    StringList
	ImageURL    string `gorm:"size:2048"`
	Rating      float64
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the table name for Videogame
func (Videogame) TableName() string {
	return "videogames"
}
