package api

import (
	"github.com/gofiber/fiber/v2"
)

type settingRequest struct {
	Value any `json:"value"`
}

func (handler *Handler) ListSettings(c *fiber.Ctx) error {
	settings, err := handler.settingsService.List()
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(settings)
}

func (handler *Handler) UpsertSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return badRequest(c, "missing setting key")
	}

	var request settingRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid request body")
	}
	if request.Value == nil {
		return badRequest(c, "missing value")
	}

	if err := handler.settingsService.Upsert(key, request.Value); err != nil {
		return handler.respondError(c, err)
	}
	handler.log.Info().Str("key", key).Str("updated_by", currentUsername(c)).Msg("setting updated")
	return c.SendStatus(fiber.StatusNoContent)
}
