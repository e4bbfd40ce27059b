package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/andresouzadev/sindigo/internal/models"
)

const (
	contextUsernameKey = "current_username"
	contextRoleKey     = "current_role"
)

// AuthRequired validates the Bearer token and stores the session identity in
// the request context.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(raw) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	claims, err := handler.parseToken(strings.TrimSpace(raw))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	c.Locals(contextUsernameKey, claims.Username)
	c.Locals(contextRoleKey, claims.Role)
	return c.Next()
}

// AdminOnly guards destructive and administrative routes. It must run after
// AuthRequired.
func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	if currentRole(c) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
	}
	return c.Next()
}

func currentUsername(c *fiber.Ctx) string {
	username, _ := c.Locals(contextUsernameKey).(string)
	return username
}

func currentRole(c *fiber.Ctx) string {
	role, _ := c.Locals(contextRoleKey).(string)
	return role
}
