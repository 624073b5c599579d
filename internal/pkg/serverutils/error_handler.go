package serverutils

import (
	"errors"

	"workout-generator-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into ErrorResponse
// JSON. Unknown errors are logged and reported as a generic 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusBadRequest,
				"message": "Validation failed",
				"data":    validationErr.Fields,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			if fiberErr.Code >= fiber.StatusInternalServerError {
				log.Error("HTTP", fiberErr.Message, map[string]interface{}{"path": ctx.Path(), "method": ctx.Method()})
			}
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"error":  err.Error(),
			"path":   ctx.Path(),
			"method": ctx.Method(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Error getting document"))
	}
}
