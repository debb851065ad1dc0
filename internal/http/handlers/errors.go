package handlers

import (
	"github.com/gofiber/fiber/v2"

	"companyviz/internal/apperr"
	applog "companyviz/internal/log"
)

// ErrorHandler maps typed application errors to HTTP responses. Internal
// causes are logged with their original error and never serialized out.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := apperr.From(err); ok {
		status := apperr.Status(err)
		if status >= 500 {
			applog.Error(c, "server.error", err, nil)
		}
		body := fiber.Map{"kind": e.Kind, "message": e.Message}
		if e.Field != "" {
			body["field"] = e.Field
		}
		if e.Kind == apperr.KindInternal {
			body["message"] = "something went wrong"
		}
		return c.Status(status).JSON(fiber.Map{"error": body})
	}

	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fiber.Map{"kind": "error", "message": fe.Message}})
	}

	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{"kind": apperr.KindInternal, "message": "something went wrong"},
	})
}
