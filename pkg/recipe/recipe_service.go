package recipe

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/pkg/shelf"
	"Smart-Shelf-Backend/pkg/urgency"
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type (
	RecipeService interface {
		SuggestForShelfItem(ctx context.Context, id string) (domain.ShelfItemRecipeResponse, error)
		Suggest(ctx context.Context, req domain.RecipeSuggestionRequest) (domain.RecipeSuggestion, error)
		CookShelfItem(ctx context.Context, id string) (domain.ShelfItemResponse, error)
	}

	recipeService struct {
		gateway      *Gateway
		shelfService shelf.ShelfService
		now          func() time.Time
	}
)

func NewRecipeService(gateway *Gateway, shelfService shelf.ShelfService, now func() time.Time) RecipeService {
	if now == nil {
		now = time.Now
	}
	return &recipeService{
		gateway:      gateway,
		shelfService: shelfService,
		now:          now,
	}
}

func (s *recipeService) SuggestForShelfItem(ctx context.Context, id string) (domain.ShelfItemRecipeResponse, error) {
	item, err := s.shelfService.GetShelfItemByID(ctx, id)
	if err != nil {
		return domain.ShelfItemRecipeResponse{}, err
	}

	suggestion, err := s.Suggest(ctx, domain.RecipeSuggestionRequest{
		ItemName:   item.Name,
		ExpiryDate: item.ExpiryDate.Format(time.RFC3339),
		Category:   string(item.Category),
	})
	if err != nil {
		return domain.ShelfItemRecipeResponse{}, err
	}

	return domain.ShelfItemRecipeResponse{
		Item:      item,
		Recipe:    suggestion,
		HoursLeft: urgency.HoursLeft(item.ExpiryDate, s.now()),
	}, nil
}

func (s *recipeService) Suggest(ctx context.Context, req domain.RecipeSuggestionRequest) (domain.RecipeSuggestion, error) {
	suggestion, err := s.gateway.Suggest(ctx, req)
	if err != nil {
		log.Warnf("recipe suggestion for %q failed: %v", req.ItemName, err)
		return domain.RecipeSuggestion{}, err
	}
	return suggestion, nil
}

// CookShelfItem records that the user is making the suggested recipe.
func (s *recipeService) CookShelfItem(ctx context.Context, id string) (domain.ShelfItemResponse, error) {
	return s.shelfService.ConsumeShelfItem(ctx, id)
}
