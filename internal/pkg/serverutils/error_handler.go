package serverutils

import (
	"errors"

	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON
// error envelope. Server-side failures are logged with their kind.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := StatusFor(err)
		message := apperror.Message(err)
		switch apperror.KindOf(err) {
		case apperror.KindStorage, apperror.KindInternal:
			var fiberErr *fiber.Error
			if !errors.As(err, &fiberErr) {
				message = "Internal server error"
			}
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": status,
				"kind":   string(apperror.KindOf(err)),
				"error":  err,
			})
		}

		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}
