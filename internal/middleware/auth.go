// Package middleware provides HTTP middleware for the API: JWT
// authentication, permission checks and admin gating for the fiber router.
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils"
)

// Auth validates the Bearer token and stores the claims on the request
// context under "claims".
func Auth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	_, claims, err := utils.ParseToken(tokenString)
	if err != nil {
		log.Printf("token validation error: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	c.Locals("claims", claims)
	return c.Next()
}

// Claims pulls the authenticated claims from the request context.
func Claims(c *fiber.Ctx) *models.UserClaims {
	claims, _ := c.Locals("claims").(*models.UserClaims)
	return claims
}

// RequirePermission rejects requests whose token lacks the permission.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil || !claims.HasPermission(permission) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}
		return c.Next()
	}
}

// AdminOnly rejects non-admin tokens.
func AdminOnly(c *fiber.Ctx) error {
	claims := Claims(c)
	if claims == nil || claims.Role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
	}
	return c.Next()
}
