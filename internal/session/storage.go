package session

import (
	"time"

	"github.com/gameshelf/gameshelf/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gcInterval is how often expired session rows are swept.
const gcInterval = 10 * time.Minute

// Storage persists session blobs in the application database so sessions
// survive process restarts. It implements fiber.Storage.
type Storage struct {
	db   *gorm.DB
	done chan struct{}
}

// NewStorage creates a database-backed session storage and starts the
// expiry sweeper.
func NewStorage(db *gorm.DB) *Storage {
	s := &Storage{
		db:   db,
		done: make(chan struct{}),
	}
	go s.gcLoop()
	return s
}

// Get returns the session blob for key, or nil when the key is missing or
// expired.
func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	var rec models.Session
	err := s.db.Where("id = ?", key).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if !rec.ExpiresAt.IsZero() && time.Now().After(rec.ExpiresAt) {
		return nil, nil
	}
	return rec.Data, nil
}

// Set upserts the session blob for key with the given time to live. The
// middleware resaves on every request, refreshing the row each time.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" {
		return nil
	}
	rec := models.Session{
		ID:        key,
		Data:      val,
		ExpiresAt: time.Now().Add(exp),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at", "updated_at"}),
	}).Create(&rec).Error
}

// Delete removes the session row for key.
func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.db.Where("id = ?", key).Delete(&models.Session{}).Error
}

// Reset removes all session rows.
func (s *Storage) Reset() error {
	return s.db.Where("1 = 1").Delete(&models.Session{}).Error
}

// Close stops the expiry sweeper. The database connection is owned by the
// caller and is not closed here.
func (s *Storage) Close() error {
	close(s.done)
	return nil
}

func (s *Storage) gcLoop() {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.db.Where("expires_at <= ?", time.Now()).Delete(&models.Session{})
		}
	}
}
