package handlers

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/internal/api/presenters"
	"Smart-Shelf-Backend/pkg/data"
	"time"

	"github.com/gofiber/fiber/v2"
)

type (
	DataHandler interface {
		ExportData(c *fiber.Ctx) error
		ExportDataToS3(c *fiber.Ctx) error
		ResetData(c *fiber.Ctx) error
	}

	dataHandler struct {
		dataService data.DataService
	}
)

func NewDataHandler(dataService data.DataService) DataHandler {
	return &dataHandler{
		dataService: dataService,
	}
}

// ExportData streams the persisted record as a JSON download.
func (h *dataHandler) ExportData(c *fiber.Ctx) error {
	payload, err := h.dataService.Export(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedExportData, err)
	}

	c.Attachment(data.ExportFileName(time.Now()))
	c.Type("json")
	return c.Status(fiber.StatusOK).Send(payload)
}

func (h *dataHandler) ExportDataToS3(c *fiber.Ctx) error {
	res, err := h.dataService.ExportToS3(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedExportData, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessExportData)
}

func (h *dataHandler) ResetData(c *fiber.Ctx) error {
	if err := h.dataService.Reset(c.Context()); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedResetData, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetData)
}
