package middleware

import (
	"github.com/gameshelf/gameshelf/internal/session"
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

// RequireUser validates that the request carries an authenticated session.
// Requests without one are redirected to the login page before the handler
// runs. The guard is attached per route, so adding a route never silently
// bypasses it.
func RequireUser(store *fibersession.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/log-in", fiber.StatusFound)
		}

		email, ok := sess.Get(session.CurrentUserKey).(string)
		if !ok || email == "" {
			return c.Redirect("/log-in", fiber.StatusFound)
		}

		// Make the authenticated user available to handlers
		c.Locals("currentUser", email)

		return c.Next()
	}
}
