package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// errInvalidBody is reported when a request body cannot be decoded.
var errInvalidBody = errors.New("invalid request body")

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// jsonErrorDetails returns an error response carrying the underlying cause.
func jsonErrorDetails(c fiber.Ctx, status int, message string, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   message,
		"details": err.Error(),
	})
}

// decodeBody unmarshals the request body into v.
func decodeBody(c fiber.Ctx, v any) error {
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}
