package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gameshelf/gameshelf/internal/services"
	"github.com/gameshelf/gameshelf/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VideogameHandler handles the guarded collection routes. The access guard
// has already placed the authenticated email in c.Locals("currentUser").
type VideogameHandler struct {
	DB *gorm.DB
}

// videogameForm is the allow-listed field set for the create and edit forms.
// Unknown fields posted alongside these are dropped, and rating is validated
// as a number instead of being stored verbatim.
type videogameForm struct {
	Name        string `form:"name"`
	Genre       string `form:"genre"`
	Platform    string `form:"platform"`
	ImageURL    string `form:"imageUrl"`
	Rating      string `form:"rating"`
	Description string `form:"description"`
}

// currentUser extracts the authenticated email set by the access guard.
func currentUser(c *fiber.Ctx) (string, error) {
	email, ok := c.Locals("currentUser").(string)
	if !ok || email == "" {
		return "", fmt.Errorf("no authenticated user in context")
	}
	return email, nil
}

// parseID parses the :id route parameter.
func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

// validate converts the form into a service input, or returns a message for
// re-rendering.
func (f *videogameForm) validate() (services.VideogameInput, string) {
	if f.Name == "" {
		return services.VideogameInput{}, "Name is required."
	}
	var rating float64
	if f.Rating != "" {
		var err error
		rating, err = strconv.ParseFloat(f.Rating, 64)
		if err != nil || rating < 0 || rating > 10 {
			return services.VideogameInput{}, "Rating must be a number between 0 and 10."
		}
	}
	return services.VideogameInput{
		Name:        f.Name,
		Genre:       f.Genre,
		Platform:    f.Platform,
		ImageURL:    f.ImageURL,
		Rating:      rating,
		Description: f.Description,
	}, ""
}

// NewForm handles GET /new-videogame
func (h *VideogameHandler) NewForm(c *fiber.Ctx) error {
	return c.Render("new-videogame", fiber.Map{})
}

// Create handles POST /new-videogame
func (h *VideogameHandler) Create(c *fiber.Ctx) error {
	email, err := currentUser(c)
	if err != nil {
		return c.Redirect("/log-in", fiber.StatusFound)
	}

	var form videogameForm
	if err := c.BodyParser(&form); err != nil {
		return c.Render("new-videogame", fiber.Map{"ErrorMessage": "Invalid form submission."})
	}
	input, msg := form.validate()
	if msg != "" {
		return c.Render("new-videogame", fiber.Map{"ErrorMessage": msg, "Form": form})
	}

	if _, err := services.CreateVideogame(h.DB, email, input); err != nil {
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "videogame.create"}
	}

	return c.Redirect("/all-videogames", fiber.StatusFound)
}

// List handles GET /all-videogames
func (h *VideogameHandler) List(c *fiber.Ctx) error {
	email, err := currentUser(c)
	if err != nil {
		return c.Redirect("/log-in", fiber.StatusFound)
	}

	games, err := services.ListVideogames(h.DB, email)
	if err != nil {
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "videogame.list"}
	}

	return c.Render("all-videogames", fiber.Map{"Videogames": games})
}

// Single handles GET /videogame/:id
func (h *VideogameHandler) Single(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound("Videogame not found")
	}

	game, err := services.GetVideogame(h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound("Videogame not found")
		}
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "videogame.get"}
	}

	return c.Render("videogame", fiber.Map{"Game": game})
}

// EditForm handles GET /edit-videogame/:id
func (h *VideogameHandler) EditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound("Videogame not found")
	}

	game, err := services.GetVideogame(h.DB, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound("Videogame not found")
		}
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "videogame.get"}
	}

	// The form posts comma-separated values, so join the stored sequences back.
	return c.Render("edit-videogame", fiber.Map{
		"Game":        game,
		"GenreCSV":    strings.Join(game.Genre, ","),
		"PlatformCSV": strings.Join(game.Platform, ","),
	})
}

// Edit handles POST /edit-videogame/:id. Genre and platform are re-split the
// same way create splits them, so an edit never overwrites the stored
// sequences with a raw string.
func (h *VideogameHandler) Edit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound("Videogame not found")
	}

	var form videogameForm
	if err := c.BodyParser(&form); err != nil {
		return c.Render("edit-videogame", fiber.Map{"ErrorMessage": "Invalid form submission."})
	}
	input, msg := form.validate()
	if msg != "" {
		game, gerr := services.GetVideogame(h.DB, id)
		if gerr != nil {
			return notFound("Videogame not found")
		}
		return c.Render("edit-videogame", fiber.Map{
			"ErrorMessage": msg,
			"Game":         game,
			"GenreCSV":     form.Genre,
			"PlatformCSV":  form.Platform,
		})
	}

	if err := services.UpdateVideogame(h.DB, id, input); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound("Videogame not found")
		}
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "videogame.edit"}
	}

	return c.Redirect(fmt.Sprintf("/videogame/%d", id), fiber.StatusFound)
}

// Delete handles POST /delete-game/:id
func (h *VideogameHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound("Videogame not found")
	}

	if err := services.DeleteVideogame(h.DB, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound("Videogame not found")
		}
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "videogame.delete"}
	}

	return c.Redirect("/all-videogames", fiber.StatusFound)
}

func notFound(message string) error {
	return &types.CustomError{Code: fiber.StatusNotFound, Message: message, Type: "videogame.notfound"}
}
