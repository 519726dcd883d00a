package handlers

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/internal/api/presenters"
	"Smart-Shelf-Backend/pkg/shelf"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ShelfHandler interface {
		AddShelfItem(c *fiber.Ctx) error
		UpdateShelfItem(c *fiber.Ctx) error
		DeleteShelfItem(c *fiber.Ctx) error
		GetShelfItems(c *fiber.Ctx) error
		GetShelfItemDetails(c *fiber.Ctx) error
		ConsumeShelfItem(c *fiber.Ctx) error
		DiscardShelfItem(c *fiber.Ctx) error
		FreezeShelfItem(c *fiber.Ctx) error
		GetDashboard(c *fiber.Ctx) error
		GetAddItemHints(c *fiber.Ctx) error
	}

	shelfHandler struct {
		shelfService shelf.ShelfService
		validator    *validator.Validate
	}
)

func NewShelfHandler(shelfService shelf.ShelfService, validator *validator.Validate) ShelfHandler {
	return &shelfHandler{
		shelfService: shelfService,
		validator:    validator,
	}
}

func (h *shelfHandler) AddShelfItem(c *fiber.Ctx) error {
	req := new(domain.AddShelfItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddShelfItem, err)
	}

	res, err := h.shelfService.AddShelfItem(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddShelfItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddShelfItem)
}

func (h *shelfHandler) UpdateShelfItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	req := new(domain.UpdateShelfItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateShelfItem, err)
	}

	res, err := h.shelfService.UpdateShelfItem(c.Context(), itemID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateShelfItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateShelfItem)
}

func (h *shelfHandler) DeleteShelfItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	if err := h.shelfService.RemoveShelfItem(c.Context(), itemID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteShelfItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteShelfItem)
}

func (h *shelfHandler) GetShelfItems(c *fiber.Ctx) error {
	status := c.Query("status", "all")

	items, err := h.shelfService.GetShelfItems(c.Context(), status)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetShelfItems, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"total": len(items),
	}, fiber.StatusOK, domain.MessageSuccessGetShelfItems)
}

func (h *shelfHandler) GetShelfItemDetails(c *fiber.Ctx) error {
	itemID := c.Params("id")

	item, err := h.shelfService.GetShelfItemByID(c.Context(), itemID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetShelfItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetShelfItem)
}

func (h *shelfHandler) ConsumeShelfItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	item, err := h.shelfService.ConsumeShelfItem(c.Context(), itemID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedConsumeShelfItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessConsumeShelfItem)
}

func (h *shelfHandler) DiscardShelfItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	req := new(domain.DiscardShelfItemRequest)

	// The reason is optional, so an empty body is accepted.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDiscardShelfItem, err)
	}

	item, err := h.shelfService.DiscardShelfItem(c.Context(), itemID, req.Reason)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDiscardShelfItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessDiscardShelfItem)
}

func (h *shelfHandler) FreezeShelfItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	item, err := h.shelfService.FreezeShelfItem(c.Context(), itemID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedFreezeShelfItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessFreezeShelfItem)
}

func (h *shelfHandler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.shelfService.GetDashboard(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, dashboard, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *shelfHandler) GetAddItemHints(c *fiber.Ctx) error {
	hints, err := h.shelfService.GetAddItemHints(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedProcessRequest, err)
	}

	return presenters.SuccessResponse(c, hints, fiber.StatusOK, domain.MessageSuccessGetAddItemHints)
}
