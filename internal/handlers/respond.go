package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
)

func getUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("userId")
	if v == nil {
		return uuid.Nil, apperrors.ErrUnauthorized
	}

	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		id, err := uuid.Parse(t)
		if err != nil {
			return uuid.Nil, apperrors.ErrUnauthorized
		}
		return id, nil
	default:
		return uuid.Nil, apperrors.ErrUnauthorized
	}
}

// paramUUID parses a path parameter, reporting a bad id as invalid input.
func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, apperrors.Invalid(name + " is not a valid id")
	}
	return id, nil
}

func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func okMessage(c *fiber.Ctx, msg string, data any) error {
	body := fiber.Map{"success": true, "message": msg}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(body)
}

// fail writes err using the error-kind mapping. Server-side failures are
// logged with their full chain; the client only sees the mapped message.
func fail(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": apperrors.Message(err),
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "invalid body",
	})
}
