package session

import (
	"time"

	"github.com/gameshelf/gameshelf/internal/config"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CurrentUserKey is the session key holding the logged-in user's email.
const CurrentUserKey = "currentUser"

// NewStore builds the session store: database-backed storage, uuid session
// identifiers, cookie named by configuration, fixed TTL.
func NewStore(cfg *config.Config, db *gorm.DB) *session.Store {
	return session.New(session.Config{
		Storage:        NewStorage(db),
		Expiration:     time.Duration(cfg.SessionTTL) * time.Hour,
		KeyLookup:      "cookie:" + cfg.SessionCookie,
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}
