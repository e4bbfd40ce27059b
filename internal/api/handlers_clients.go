package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/andresouzadev/sindigo/internal/services"
)

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// clientColumns whitelists the JSON fields a partial update may touch and
// maps them onto storage columns. Identifiers and timestamps stay out.
var clientColumns = map[string]string{
	"fullName":        "full_name",
	"cpf":             "cpf",
	"rg":              "rg",
	"address":         "address",
	"phone":           "phone",
	"email":           "email",
	"affiliationDate": "affiliation_date",
	"status":          "status",
	"photo":           "photo",
}

func translateFields(body map[string]any, columns map[string]string) map[string]any {
	updates := make(map[string]any, len(body))
	for field, value := range body {
		if column, known := columns[field]; known {
			updates[column] = value
		}
	}
	return updates
}

type clientRequest struct {
	FullName        string `json:"fullName"`
	CPF             string `json:"cpf"`
	RG              string `json:"rg"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	AffiliationDate string `json:"affiliationDate"`
	Status          string `json:"status"`
	Photo           string `json:"photo"`
}

func (handler *Handler) ListClients(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		clients, err := handler.repositories.Clients.ListByStatus(status)
		if err != nil {
			return handler.respondError(c, err)
		}
		return c.JSON(clients)
	}

	clients, err := handler.clientService.List()
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(clients)
}

func (handler *Handler) GetClient(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid client id")
	}

	client, err := handler.clientService.FindByID(id)
	if err != nil {
		return handler.respondError(c, err)
	}
	if client == nil {
		return handler.respondError(c, services.ErrClientNotFound)
	}
	return c.JSON(client)
}

func (handler *Handler) CreateClient(c *fiber.Ctx) error {
	var request clientRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid request body")
	}

	client, err := handler.clientService.Register(services.ClientInput{
		FullName:        request.FullName,
		CPF:             request.CPF,
		RG:              request.RG,
		Address:         request.Address,
		Phone:           request.Phone,
		Email:           request.Email,
		AffiliationDate: request.AffiliationDate,
		Status:          request.Status,
		Photo:           request.Photo,
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (handler *Handler) UpdateClient(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid client id")
	}

	body := map[string]any{}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	updates := translateFields(body, clientColumns)
	if len(updates) == 0 {
		return badRequest(c, "no updatable fields")
	}

	if err := handler.clientService.Update(id, updates); err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) DeleteClient(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid client id")
	}

	if err := handler.clientService.Delete(id); err != nil {
		return handler.respondError(c, err)
	}
	handler.log.Info().Uint("client_id", id).Msg("client and related records deleted")
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ExportClientsCSV(c *fiber.Ctx) error {
	data, err := handler.reportService.ClientsCSV()
	if err != nil {
		return handler.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="associados.csv"`)
	return c.Send(data)
}
