package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Fail sends the standard failure envelope: {"success": false, "message": ...}.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// FailWithErrors sends a failure envelope carrying a field-keyed error map.
func FailWithErrors(c *fiber.Ctx, status int, message string, errs map[string]string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"errors":  errs,
	})
}

// FailInternal sends the generic 500 envelope. The raw error string is echoed
// in the body, acceptable for an internal tool.
func FailInternal(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}
