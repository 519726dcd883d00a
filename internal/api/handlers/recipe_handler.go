package handlers

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/internal/api/presenters"
	"Smart-Shelf-Backend/pkg/recipe"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetShelfItemRecipe(c *fiber.Ctx) error
		SuggestRecipe(c *fiber.Ctx) error
		CookShelfItem(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func suggestionFailure(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrSuggestionUnavailable) {
		return presenters.ErrorResponseWithData(c, fiber.StatusBadGateway, domain.MessageFailedSuggestRecipe, err,
			domain.RecipeFailureResponse{Alternatives: domain.SuggestionAlternatives})
	}
	return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSuggestRecipe, err)
}

func (h *recipeHandler) GetShelfItemRecipe(c *fiber.Ctx) error {
	itemID := c.Params("id")

	res, err := h.recipeService.SuggestForShelfItem(c.Context(), itemID)
	if err != nil {
		return suggestionFailure(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSuggestRecipe)
}

func (h *recipeHandler) SuggestRecipe(c *fiber.Ctx) error {
	req := new(domain.RecipeSuggestionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSuggestRecipe, err)
	}

	res, err := h.recipeService.Suggest(c.Context(), *req)
	if err != nil {
		return suggestionFailure(c, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSuggestRecipe)
}

func (h *recipeHandler) CookShelfItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	item, err := h.recipeService.CookShelfItem(c.Context(), itemID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCookShelfItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessCookShelfItem)
}
