package handlers

import (
	"errors"

	"github.com/gameshelf/gameshelf/internal/services"
	"github.com/gameshelf/gameshelf/internal/session"
	"github.com/gameshelf/gameshelf/internal/types"
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// AuthHandler handles the public routes: home, signup, login, logout.
type AuthHandler struct {
	DB       *gorm.DB
	Sessions *fibersession.Store
}

// credentialsForm is the allow-listed field set for signup and login.
type credentialsForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Home handles GET /
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	var current string
	if sess, err := h.Sessions.Get(c); err == nil {
		current, _ = sess.Get(session.CurrentUserKey).(string)
	}
	return c.Render("home", fiber.Map{"Session": current})
}

// LoginForm handles GET /log-in
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return c.Render("log-in", fiber.Map{})
}

// Login handles POST /log-in
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form credentialsForm
	if err := c.BodyParser(&form); err != nil {
		return c.Render("log-in", fiber.Map{"ErrorMessage": "Invalid form submission."})
	}
	if form.Email == "" || form.Password == "" {
		return c.Render("log-in", fiber.Map{"ErrorMessage": "Email and password are required."})
	}

	user, err := services.AuthenticateUser(h.DB, form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Render("log-in", fiber.Map{"ErrorMessage": "This user does not exist."})
		case errors.Is(err, services.ErrWrongPassword):
			return c.Render("log-in", fiber.Map{"ErrorMessage": "Incorrect password. Please try again."})
		default:
			return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "auth.login"}
		}
	}

	sess, err := h.Sessions.Get(c)
	if err != nil {
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "auth.session"}
	}
	sess.Set(session.CurrentUserKey, user.Email)
	if err := sess.Save(); err != nil {
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "auth.session"}
	}

	return c.Redirect("/", fiber.StatusFound)
}

// SignupForm handles GET /sign-up
func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return c.Render("sign-up", fiber.Map{})
}

// Signup handles POST /sign-up. On success the user is redirected home
// without a session; logging in is a separate step.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var form credentialsForm
	if err := c.BodyParser(&form); err != nil {
		return c.Render("sign-up", fiber.Map{"ErrorMessage": "Invalid form submission."})
	}
	if form.Email == "" || form.Password == "" {
		return c.Render("sign-up", fiber.Map{"ErrorMessage": "Email and password are required."})
	}

	if _, err := services.RegisterUser(h.DB, form.Email, form.Password); err != nil {
		if errors.Is(err, services.ErrUserExists) {
			// An existing account lands on the login form instead.
			return c.Render("log-in", fiber.Map{"ErrorMessage": "This user already exists. Did you mean to log in?"})
		}
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "auth.signup"}
	}

	return c.Redirect("/", fiber.StatusFound)
}

// Logout handles GET /log-out. The session is destroyed unconditionally,
// whether or not one existed.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := h.Sessions.Get(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/", fiber.StatusFound)
}
