package models

import (
	"time"
)

// Session is a server-side session record referenced by the session cookie.
// Data is an opaque blob owned by the session middleware. Sessions survive
// process restarts and are garbage collected after ExpiresAt.
type Session struct {
	ID        string `gorm:"primaryKey;size:64"`
	Data      []byte
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Session
func (Session) TableName() string {
	return "sessions"
}
