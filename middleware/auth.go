package middleware

import (
	"os"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

// JWTSecret returns the session signing key.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key-change-in-production"
	}
	return []byte(secret)
}

// Protected validates the session token from the auth cookie (or a bearer
// header) and stores the identity claims in locals.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   JWTSecret(),
		TokenLookup:  "cookie:auth-token,header:Authorization",
		AuthScheme:   "Bearer",
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "Not authenticated",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "Invalid token claims",
				})
			}

			userID, _ := claims["id"].(float64)
			email, _ := claims["email"].(string)
			name, _ := claims["name"].(string)
			isDoctor, _ := claims["isDoctor"].(bool)

			c.Locals("userID", uint(userID))
			c.Locals("email", email)
			c.Locals("name", name)
			c.Locals("isDoctor", isDoctor)

			return c.Next()
		},
	})
}

// RequireDoctor gates the dashboard and decision endpoints. The role claim
// is trusted as issued for the token lifetime and not re-read from the
// account store.
func RequireDoctor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isDoctor, ok := c.Locals("isDoctor").(bool)
		if !ok || !isDoctor {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Doctor access required",
			})
		}
		return c.Next()
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Invalid or expired token",
	})
}
