package handlers

import (
	"Smart-Shelf-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrShelfItemNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrShelfItemNotActive),
		errors.Is(err, domain.ErrQuietHours),
		errors.Is(err, domain.ErrNothingToSend):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidItemName),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidStorage),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidAddedDate),
		errors.Is(err, domain.ErrInvalidExpiryDate),
		errors.Is(err, domain.ErrInvalidShelfLife),
		errors.Is(err, domain.ErrInvalidTimeOfDay),
		errors.Is(err, domain.ErrInvalidNotificationStyle):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidPassphrase):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrSuggestionUnavailable),
		errors.Is(err, domain.ErrExportUploadFailed):
		return fiber.StatusBadGateway
	case errors.Is(err, domain.ErrFeatureDisabled),
		errors.Is(err, domain.ErrAuthDisabled),
		errors.Is(err, domain.ErrNoRecipient):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
