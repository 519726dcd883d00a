package handlers

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/internal/api/presenters"
	"Smart-Shelf-Backend/pkg/settings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SettingsHandler interface {
		GetSettings(c *fiber.Ctx) error
		UpdateSettings(c *fiber.Ctx) error
		CompleteSetup(c *fiber.Ctx) error
	}

	settingsHandler struct {
		settingsService settings.SettingsService
		validator       *validator.Validate
	}
)

func NewSettingsHandler(settingsService settings.SettingsService, validator *validator.Validate) SettingsHandler {
	return &settingsHandler{
		settingsService: settingsService,
		validator:       validator,
	}
}

func (h *settingsHandler) GetSettings(c *fiber.Ctx) error {
	res, err := h.settingsService.GetSettings(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetSettings, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSettings)
}

func (h *settingsHandler) UpdateSettings(c *fiber.Ctx) error {
	req := new(domain.UpdateSettingsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateSettings, err)
	}

	res, err := h.settingsService.UpdateSettings(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateSettings, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateSettings)
}

func (h *settingsHandler) CompleteSetup(c *fiber.Ctx) error {
	res, err := h.settingsService.CompleteSetup(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCompleteSetup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCompleteSetup)
}
