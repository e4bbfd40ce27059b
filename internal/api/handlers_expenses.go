package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/andresouzadev/sindigo/internal/services"
)

type expenseRequest struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

var expenseColumns = map[string]string{
	"description": "description",
	"category":    "category",
	"amount":      "amount",
	"date":        "date",
}

func (handler *Handler) ListExpenses(c *fiber.Ctx) error {
	if month := c.Query("month"); month != "" {
		expenses, err := handler.expenseService.ListByMonth(month)
		if err != nil {
			return handler.respondError(c, err)
		}
		return c.JSON(expenses)
	}

	expenses, err := handler.expenseService.List()
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(expenses)
}

func (handler *Handler) RegisterExpense(c *fiber.Ctx) error {
	var request expenseRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid request body")
	}

	expense, err := handler.expenseService.Register(services.ExpenseInput{
		Description: request.Description,
		Category:    request.Category,
		Amount:      request.Amount,
		Date:        request.Date,
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

func (handler *Handler) UpdateExpense(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid expense id")
	}

	body := map[string]any{}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	updates := translateFields(body, expenseColumns)
	if len(updates) == 0 {
		return badRequest(c, "no updatable fields")
	}

	if err := handler.expenseService.Update(id, updates); err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) DeleteExpense(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid expense id")
	}

	if err := handler.expenseService.Delete(id); err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ExportExpensesCSV(c *fiber.Ctx) error {
	data, err := handler.reportService.ExpensesCSV()
	if err != nil {
		return handler.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="despesas.csv"`)
	return c.Send(data)
}
