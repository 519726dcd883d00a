package domain

import (
	"errors"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

var (
	MessageSuccessSuggestRecipe = "recipe suggestion generated successfully"
	MessageSuccessCookShelfItem = "enjoy your meal, item marked as consumed"

	MessageFailedSuggestRecipe = "Failed to find a recipe. Try freezing it or planning it for today."
	MessageFailedCookShelfItem = "failed to mark shelf item as cooked"

	ErrSuggestionUnavailable   = errors.New("recipe suggestion unavailable")
	ErrRecipeContractViolation = errors.New("recipe suggestion violates the response contract")
	ErrRecipeProviderUnknown   = errors.New("unknown recipe provider")

	// SuggestionAlternatives are offered to the user when no recipe could be produced.
	SuggestionAlternatives = []string{"freeze", "plan-today"}
)

type (
	RecipeSuggestionRequest struct {
		ItemName   string `json:"itemName" validate:"required"`
		ExpiryDate string `json:"expiryDate,omitempty"`
		Category   string `json:"category,omitempty"`
	}

	RecipeSuggestion struct {
		RecipeTitle   string     `json:"recipeTitle"`
		EstimatedTime string     `json:"estimatedTime"`
		Difficulty    Difficulty `json:"difficulty"`
		UsesItem      string     `json:"usesItem"`
		Ingredients   []string   `json:"ingredients"`
		Instructions  []string   `json:"instructions"`
		Notes         string     `json:"notes,omitempty"`
	}

	ShelfItemRecipeResponse struct {
		Item      ShelfItemResponse `json:"item"`
		Recipe    RecipeSuggestion  `json:"recipe"`
		HoursLeft int               `json:"hours_left"`
	}

	RecipeFailureResponse struct {
		Alternatives []string `json:"alternatives"`
	}
)
