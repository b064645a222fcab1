package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Result statuses returned in the response envelope. Callers switch on these
// instead of relying on errors crossing the RPC boundary.
const (
	StatusOK            = "OK"
	StatusValidation    = "VALIDATION"
	StatusNotFound      = "NOT_FOUND"
	StatusAlreadyExists = "ALREADY_EXISTS"
	StatusConflict      = "CONFLICT"
	StatusInternal      = "INTERNAL"
)

func ok(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"status":  StatusOK,
		"message": message,
		"data":    data,
	})
}

func fail(c *fiber.Ctx, httpCode int, status, message string) error {
	return c.Status(httpCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    nil,
	})
}

// isDuplicateErr reports whether err is a uniqueness violation. The loser of
// a concurrent merge race lands here and surfaces as CONFLICT. GORM's error
// translation maps driver duplicates to ErrDuplicatedKey; the string checks
// cover connections opened without translation.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
