package serverutils

import (
	"errors"
	"strings"

	"wa-feedback-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors to transport responses so no
// unhandled fault crosses the boundary.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		switch {
		case apperror.IsValidation(err) || strings.HasPrefix(err.Error(), "invalid request"):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case apperror.IsTransientStore(err):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "Temporary storage failure, please retry"})
		case apperror.IsGateway(err):
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Message delivery failed"})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "An error occurred"})
		}
	}
}
