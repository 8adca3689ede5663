package httputil

import (
	"errors"
	"net"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AppError is an API error carrying the HTTP status and a stable machine
// code alongside the human-readable message. Handlers and middleware
// return these; the central error handler renders them.
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// New creates an AppError with the given status, code and message.
func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func BadRequest(code, message string) *AppError {
	return New(fiber.StatusBadRequest, code, message)
}

func Unauthorized(code, message string) *AppError {
	return New(fiber.StatusUnauthorized, code, message)
}

func NotFound(code, message string) *AppError {
	return New(fiber.StatusNotFound, code, message)
}

func Conflict(code, message string) *AppError {
	return New(fiber.StatusConflict, code, message)
}

// Success writes the standard success envelope.
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// fail writes the standard failure envelope.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"code":    code,
	})
}

// ErrorHandler returns the fiber error handler that translates every error
// into the failure envelope. Store-level error shapes never leak: known
// errors map onto the taxonomy, anything else becomes a 500 whose message
// is redacted in production.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *AppError
		if errors.As(err, &appErr) {
			return fail(c, appErr.Status, appErr.Code, appErr.Message)
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "NOT_FOUND", "Record not found")
		}

		var netErr net.Error
		if errors.As(err, &netErr) {
			return fail(c, fiber.StatusServiceUnavailable, "DATABASE_ERROR", "Database connection failed")
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			if fiberErr.Code == fiber.StatusNotFound {
				return fail(c, fiber.StatusNotFound, "ROUTE_NOT_FOUND", "Route not found")
			}
			return fail(c, fiberErr.Code, "INTERNAL_ERROR", fiberErr.Message)
		}

		message := err.Error()
		if production {
			message = "Something went wrong"
		}
		return fail(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", message)
	}
}

// NotFoundHandler is mounted last and catches every unmatched route.
func NotFoundHandler(c *fiber.Ctx) error {
	return fail(c, fiber.StatusNotFound, "ROUTE_NOT_FOUND", "Route "+c.OriginalURL()+" not found")
}
