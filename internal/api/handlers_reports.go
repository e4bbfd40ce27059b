package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) DuesReport(c *fiber.Ctx) error {
	report, err := handler.reportService.Dues(c.Params("reference"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(report)
}

func (handler *Handler) BalanceReport(c *fiber.Ctx) error {
	report, err := handler.reportService.Balance(c.Params("month"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(report)
}
