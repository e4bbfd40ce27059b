package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/andresouzadev/sindigo/internal/backup"
	"github.com/andresouzadev/sindigo/internal/db"
	"github.com/andresouzadev/sindigo/internal/services"
)

// respondError maps a service error onto an HTTP status. Anything unmapped
// is a 500 and gets logged with its cause; mapped errors are the client's
// fault and only travel back in the body.
func (handler *Handler) respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrPaymentClientGone),
		errors.Is(err, services.ErrExpenseNotFound),
		errors.Is(err, services.ErrDocumentNotFound),
		errors.Is(err, services.ErrUserNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, db.ErrDuplicate),
		errors.Is(err, services.ErrLastAdmin):
		status = fiber.StatusConflict
	case errors.Is(err, backup.ErrSnapshotCorrupt),
		errors.Is(err, services.ErrNoPayments):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, db.ErrStoreBlocked):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, services.ErrInvalidReference),
		errors.Is(err, services.ErrAmountNotPositive),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrClientNameRequired),
		errors.Is(err, services.ErrClientCPFRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrExpenseDescriptionRequired),
		errors.Is(err, services.ErrDocumentNameRequired),
		errors.Is(err, services.ErrDocumentEmpty),
		errors.Is(err, services.ErrDocumentTooLarge),
		errors.Is(err, services.ErrAttendanceNotesRequired),
		errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrTemplateMissing),
		errors.Is(err, services.ErrUnknownDeclaration),
		errors.Is(err, services.ErrWipeNotConfirmed):
		status = fiber.StatusBadRequest
	}

	if status == fiber.StatusInternalServerError {
		handler.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.Status(status).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
