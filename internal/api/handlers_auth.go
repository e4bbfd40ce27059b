package api

import (
	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var request loginRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := handler.authService.Login(request.Username, request.Password)
	if err != nil {
		return handler.respondError(c, err)
	}

	token, err := handler.issueToken(user)
	if err != nil {
		return handler.respondError(c, err)
	}

	handler.log.Info().Str("username", user.Username).Msg("user logged in")
	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
