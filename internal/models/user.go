package models

import (
	"time"
)

// User represents a registered account. The videogame collection hangs off
// the user via the owner foreign key on Videogame.
type User struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	Email      string `gorm:"uniqueIndex;size:255;not null"`
	Password   string `gorm:"size:255;not null"` // bcrypt hash, never plaintext
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Videogames []Videogame `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
