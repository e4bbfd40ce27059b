package api

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/andresouzadev/sindigo/internal/services"
)

func (handler *Handler) ListClientDocuments(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid client id")
	}

	documents, err := handler.documentService.ListByClient(id)
	if err != nil {
		return handler.respondError(c, err)
	}

	// Listings omit the blob; clients fetch content via the download route.
	type documentSummary struct {
		ID          uint   `json:"id"`
		ClientID    uint   `json:"clientId"`
		Name        string `json:"name"`
		ContentType string `json:"contentType"`
		Size        int    `json:"size"`
		CreatedAt   any    `json:"createdAt"`
	}
	summaries := make([]documentSummary, 0, len(documents))
	for _, document := range documents {
		summaries = append(summaries, documentSummary{
			ID:          document.ID,
			ClientID:    document.ClientID,
			Name:        document.Name,
			ContentType: document.ContentType,
			Size:        len(document.Content),
			CreatedAt:   document.CreatedAt,
		})
	}
	return c.JSON(summaries)
}

// AttachDocument stores an uploaded file for a client. The file arrives as
// multipart form data under the "file" field.
func (handler *Handler) AttachDocument(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid client id")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "missing file field")
	}
	if fileHeader.Size > services.MaxDocumentSize {
		return handler.respondError(c, services.ErrDocumentTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return handler.respondError(c, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return handler.respondError(c, err)
	}

	name := c.FormValue("name")
	if name == "" {
		name = fileHeader.Filename
	}

	document, err := handler.documentService.Attach(id, name, fileHeader.Header.Get(fiber.HeaderContentType), content)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        document.ID,
		"clientId":  document.ClientID,
		"name":      document.Name,
		"createdAt": document.CreatedAt,
	})
}

func (handler *Handler) DownloadDocument(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid document id")
	}

	document, err := handler.documentService.FindByID(id)
	if err != nil {
		return handler.respondError(c, err)
	}
	if document == nil {
		return handler.respondError(c, services.ErrDocumentNotFound)
	}

	contentType := document.ContentType
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+document.Name+`"`)
	return c.Send(document.Content)
}

func (handler *Handler) DeleteDocument(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid document id")
	}

	if err := handler.documentService.Delete(id); err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
