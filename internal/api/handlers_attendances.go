package api

import (
	"github.com/gofiber/fiber/v2"
)

type attendanceRequest struct {
	Notes string `json:"notes"`
}

func (handler *Handler) ListClientAttendances(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid client id")
	}

	attendances, err := handler.attendanceService.ListByClient(id)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(attendances)
}

func (handler *Handler) RecordAttendance(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid client id")
	}

	var request attendanceRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid request body")
	}

	attendance, err := handler.attendanceService.Record(id, request.Notes, currentUsername(c))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(attendance)
}
