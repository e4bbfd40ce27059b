package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andresouzadev/sindigo/internal/backup"
	"github.com/andresouzadev/sindigo/internal/services"
)

type userRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

var userColumns = map[string]string{
	"username": "username",
	"password": "password",
	"role":     "role",
}

type wipeRequest struct {
	Confirmation string `json:"confirmation"`
}

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.adminService.ListUsers()
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(users)
}

func (handler *Handler) CreateUser(c *fiber.Ctx) error {
	var request userRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := handler.adminService.CreateUser(services.UserInput{
		Username: request.Username,
		Password: request.Password,
		Role:     request.Role,
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (handler *Handler) UpdateUser(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid user id")
	}

	body := map[string]any{}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	updates := translateFields(body, userColumns)
	if len(updates) == 0 {
		return badRequest(c, "no updatable fields")
	}

	if err := handler.adminService.UpdateUser(id, updates); err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid user id")
	}

	if err := handler.adminService.DeleteUser(id); err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ExportBackup(c *fiber.Ctx) error {
	artifact, err := backup.Export(handler.db)
	if err != nil {
		return handler.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="backup.json"`)
	return c.Send(artifact)
}

// ImportBackup replaces the entire store with the uploaded snapshot. A
// corrupt artifact is rejected before anything is touched.
func (handler *Handler) ImportBackup(c *fiber.Ctx) error {
	artifact := c.Body()
	if len(artifact) == 0 {
		return badRequest(c, "missing snapshot body")
	}

	if err := backup.Import(handler.db, artifact); err != nil {
		return handler.respondError(c, err)
	}
	handler.log.Warn().Str("restored_by", currentUsername(c)).Msg("store restored from snapshot")
	return c.SendStatus(fiber.StatusNoContent)
}

// Wipe clears all transactional data. The confirmation phrase must be typed
// verbatim; settings and user accounts survive.
func (handler *Handler) Wipe(c *fiber.Ctx) error {
	var request wipeRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := handler.adminService.Wipe(request.Confirmation); err != nil {
		return handler.respondError(c, err)
	}
	handler.log.Warn().Str("wiped_by", currentUsername(c)).Msg("transactional data wiped")
	return c.SendStatus(fiber.StatusNoContent)
}
