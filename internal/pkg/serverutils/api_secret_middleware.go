package serverutils

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// ApiSecretMiddleware guards the inbound reply route with the shared secret
// configured for the messaging webhook relay.
func ApiSecretMiddleware(expectedSecret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if expectedSecret == "" {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server configuration error"})
		}

		provided := ctx.Get("X-Intelligence-Api-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expectedSecret)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid or missing API key"})
		}

		return ctx.Next()
	}
}
