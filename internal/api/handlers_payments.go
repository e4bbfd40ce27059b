package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/andresouzadev/sindigo/internal/services"
)

type paymentRequest struct {
	ClientID    uint            `json:"clientId"`
	Reference   string          `json:"reference"`
	PaymentDate string          `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
}

func (handler *Handler) ListPayments(c *fiber.Ctx) error {
	if reference := c.Query("reference"); reference != "" {
		payments, err := handler.repositories.Payments.ListByReference(reference)
		if err != nil {
			return handler.respondError(c, err)
		}
		return c.JSON(payments)
	}

	payments, err := handler.paymentService.List()
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(payments)
}

func (handler *Handler) ListClientPayments(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid client id")
	}

	payments, err := handler.paymentService.ListByClient(id)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(payments)
}

func (handler *Handler) RegisterPayment(c *fiber.Ctx) error {
	var request paymentRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid request body")
	}

	payment, err := handler.paymentService.Register(services.PaymentInput{
		ClientID:    request.ClientID,
		Reference:   request.Reference,
		PaymentDate: request.PaymentDate,
		Amount:      request.Amount,
	}, currentUsername(c))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

func (handler *Handler) DeletePayment(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid payment id")
	}

	if err := handler.paymentService.Delete(id); err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) PaymentReceipt(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid payment id")
	}

	document, err := handler.receiptService.Issue(id)
	if err != nil {
		return handler.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="recibo.pdf"`)
	return c.Send(document)
}

func (handler *Handler) ExportPaymentsCSV(c *fiber.Ctx) error {
	data, err := handler.reportService.PaymentsCSV()
	if err != nil {
		return handler.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pagamentos.csv"`)
	return c.Send(data)
}
