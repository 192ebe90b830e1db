package handlers

import (
	"errors"
	"log"

	"github.com/gameshelf/gameshelf/internal/types"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the single error-handling layer. Persistence failures are
// logged with their detail server-side; the client only ever sees the
// rendered error page with a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong. Please try again later."

	var customErr *types.CustomError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
		if code < fiber.StatusInternalServerError {
			message = customErr.Message
		}
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		if code < fiber.StatusInternalServerError {
			message = fiberErr.Message
		}
	}

	log.Printf("request failed: %v (url=%s)", err, c.OriginalURL())

	if renderErr := c.Status(code).Render("error", fiber.Map{
		"Status":  code,
		"Message": message,
	}); renderErr != nil {
		return c.Status(code).SendString(message)
	}
	return nil
}
