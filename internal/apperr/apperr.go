// Package apperr defines the error taxonomy shared by every handler and the
// single error-to-status mapping applied at the request boundary.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a request-scoped failure with a fixed HTTP status. The wrapped
// cause is logged internally and never sent to the client in production.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Validation reports malformed payload fields.
func Validation(fields []FieldError) *Error {
	return &Error{Status: fiber.StatusBadRequest, Message: "Request validation failed", Fields: fields}
}

// NotFound reports a business ID that did not resolve.
func NotFound(resource string) *Error {
	return &Error{Status: fiber.StatusNotFound, Message: resource + " not found"}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *Error {
	return &Error{Status: fiber.StatusConflict, Message: message}
}

// Unauthorized reports failed authentication. The message is uniform no
// matter the cause so responses cannot be used to enumerate accounts.
func Unauthorized() *Error {
	return &Error{Status: fiber.StatusUnauthorized, Message: "Invalid email or password"}
}

// BadRequest reports a malformed request outside of field validation
// (unparseable body, bad upload).
func BadRequest(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Message: message}
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{Status: fiber.StatusInternalServerError, Message: "Something went wrong", cause: err}
}

type response struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Handler returns the fiber error handler mapping the taxonomy to statuses.
// When dev is true, internal detail is echoed back to ease debugging; in
// production the body carries only the generic message.
func Handler(log *zap.Logger, dev bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *Error
		if errors.As(err, &appErr) {
			if appErr.Status >= fiber.StatusInternalServerError {
				log.Error("request failed",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.Error(err),
				)
				if dev {
					return c.Status(appErr.Status).JSON(response{Message: appErr.Error()})
				}
			}
			return c.Status(appErr.Status).JSON(response{Message: appErr.Message, Errors: appErr.Fields})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(response{Message: fiberErr.Message})
		}

		log.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		msg := "Something went wrong"
		if dev {
			msg = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response{Message: msg})
	}
}
