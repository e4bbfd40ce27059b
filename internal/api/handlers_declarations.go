package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andresouzadev/sindigo/internal/models"
)

type declarationRequest struct {
	Kind string `json:"kind"`
}

func (handler *Handler) ListDeclarations(c *fiber.Ctx) error {
	history, err := handler.declarationService.History()
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(history)
}

func (handler *Handler) ListClientDeclarations(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid client id")
	}

	history, err := handler.declarationService.HistoryByClient(id)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(history)
}

// IssueDeclaration renders the requested declaration PDF and records it in
// the audit log. The kind defaults to the membership declaration.
func (handler *Handler) IssueDeclaration(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid client id")
	}

	request := declarationRequest{Kind: models.DeclarationKindMembership}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	document, err := handler.declarationService.Issue(id, request.Kind)
	if err != nil {
		return handler.respondError(c, err)
	}

	handler.log.Info().
		Uint("client_id", id).
		Str("kind", request.Kind).
		Str("issued_by", currentUsername(c)).
		Msg("declaration issued")

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="declaracao.pdf"`)
	return c.Send(document)
}
