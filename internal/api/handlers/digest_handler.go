package handlers

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/internal/api/presenters"
	"Smart-Shelf-Backend/pkg/digest"

	"github.com/gofiber/fiber/v2"
)

type (
	DigestHandler interface {
		GetDigest(c *fiber.Ctx) error
		SendDigest(c *fiber.Ctx) error
	}

	digestHandler struct {
		digestService digest.DigestService
	}
)

func NewDigestHandler(digestService digest.DigestService) DigestHandler {
	return &digestHandler{
		digestService: digestService,
	}
}

func (h *digestHandler) GetDigest(c *fiber.Ctx) error {
	res, err := h.digestService.GetDigest(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDigest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDigest)
}

func (h *digestHandler) SendDigest(c *fiber.Ctx) error {
	res, err := h.digestService.SendDigest(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSendDigest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSendDigest)
}
