package recipe

import (
	"Smart-Shelf-Backend/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

const milkAnswer = `{
  "recipeTitle": "Milk Pancakes",
  "estimatedTime": "20 minutes",
  "difficulty": "Easy",
  "usesItem": "Milk",
  "ingredients": ["1 cup whole milk", "1 cup flour", "1 egg"],
  "instructions": ["Whisk everything.", "Fry in a pan."],
  "notes": "Serve warm."
}`

func TestSuggestReturnsValidatedRecipe(t *testing.T) {
	gen := &fakeGenerator{answer: milkAnswer}
	gw := NewGateway(gen)

	s, err := gw.Suggest(context.Background(), domain.RecipeSuggestionRequest{ItemName: "Milk"})
	require.NoError(t, err)

	assert.Equal(t, "Milk Pancakes", s.RecipeTitle)
	assert.Equal(t, domain.DifficultyEasy, s.Difficulty)
	assert.Equal(t, []string{"1 cup whole milk", "1 cup flour", "1 egg"}, s.Ingredients)
	assert.Len(t, s.Instructions, 2)
	assert.Len(t, gen.prompts, 1)
}

func TestSuggestAcceptsFencedAnswer(t *testing.T) {
	gen := &fakeGenerator{answer: "Here you go!\n```json\n" + milkAnswer + "\n```"}

	s, err := NewGateway(gen).Suggest(context.Background(), domain.RecipeSuggestionRequest{ItemName: "milk"})
	require.NoError(t, err)
	assert.Equal(t, "Milk Pancakes", s.RecipeTitle)
}

func TestSuggestFailures(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		err    error
		cause  error
	}{
		{name: "provider error", err: errors.New("quota"), cause: nil},
		{name: "empty answer", answer: "   "},
		{name: "not json", answer: "I could not think of anything."},
		{name: "truncated json", answer: `{"recipeTitle": "Milk`},
		{
			name:   "item missing from ingredients",
			answer: `{"recipeTitle":"Toast","estimatedTime":"5 min","difficulty":"Easy","usesItem":"Milk","ingredients":["bread","butter"],"instructions":["toast"]}`,
			cause:  domain.ErrRecipeContractViolation,
		},
		{
			name:   "usesItem names another item",
			answer: `{"recipeTitle":"Toast","estimatedTime":"5 min","difficulty":"Easy","usesItem":"Bread","ingredients":["bread","a splash of milk"],"instructions":["toast"]}`,
			cause:  domain.ErrRecipeContractViolation,
		},
		{
			name:   "unknown difficulty",
			answer: `{"recipeTitle":"Latte","estimatedTime":"5 min","difficulty":"Trivial","usesItem":"Milk","ingredients":["milk"],"instructions":["steam"]}`,
			cause:  domain.ErrRecipeContractViolation,
		},
		{
			name:   "no instructions",
			answer: `{"recipeTitle":"Latte","estimatedTime":"5 min","difficulty":"Easy","usesItem":"Milk","ingredients":["milk"],"instructions":[" "]}`,
			cause:  domain.ErrRecipeContractViolation,
		},
		{
			name:   "missing title",
			answer: `{"estimatedTime":"5 min","difficulty":"Easy","usesItem":"Milk","ingredients":["milk"],"instructions":["steam"]}`,
			cause:  domain.ErrRecipeContractViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{answer: tt.answer, err: tt.err}

			s, err := NewGateway(gen).Suggest(context.Background(), domain.RecipeSuggestionRequest{ItemName: "Milk"})

			assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
			assert.Equal(t, domain.RecipeSuggestion{}, s, "no partial suggestion")
		})
	}
}

func TestSuggestRequiresItemName(t *testing.T) {
	gen := &fakeGenerator{answer: milkAnswer}

	_, err := NewGateway(gen).Suggest(context.Background(), domain.RecipeSuggestionRequest{ItemName: "  "})
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
	assert.Empty(t, gen.prompts)
}

func TestSuggestWithoutGenerator(t *testing.T) {
	var gw *Gateway
	_, err := gw.Suggest(context.Background(), domain.RecipeSuggestionRequest{ItemName: "Milk"})
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
	assert.ErrorIs(t, err, domain.ErrFeatureDisabled)
}

func TestBuildPrompt(t *testing.T) {
	gw := NewGateway(&fakeGenerator{})

	prompt, err := gw.BuildPrompt(domain.RecipeSuggestionRequest{
		ItemName:   "Spinach",
		ExpiryDate: "2024-01-06T00:00:00Z",
		Category:   "Produce",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, `"Spinach"`)
	assert.Contains(t, prompt, "expires at 2024-01-06T00:00:00Z")
	assert.Contains(t, prompt, "Produce category")
	assert.Contains(t, prompt, `"recipeTitle"`)

	bare, err := gw.BuildPrompt(domain.RecipeSuggestionRequest{ItemName: "Spinach"})
	require.NoError(t, err)
	assert.NotContains(t, bare, "expires at")
	assert.NotContains(t, bare, "category;")
}

func TestParseSuggestionNormalizesDifficulty(t *testing.T) {
	s, err := ParseSuggestion(`{"recipeTitle":"Latte","estimatedTime":"5 min","difficulty":"medium","usesItem":"Milk","ingredients":["Oat MILK"],"instructions":["steam"]}`, "milk")
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyMedium, s.Difficulty)
}

func TestParseSuggestionAcceptsCloseUsesItem(t *testing.T) {
	tests := []struct {
		item     string
		usesItem string
	}{
		{item: "Chicken breast", usesItem: "chicken"},
		{item: "pasta", usesItem: "Leftover pasta"},
		{item: "Eggs", usesItem: "EGGS"},
	}

	for _, tt := range tests {
		t.Run(tt.item, func(t *testing.T) {
			answer := `{"recipeTitle":"Dish","estimatedTime":"15 min","difficulty":"Easy","usesItem":"` + tt.usesItem +
				`","ingredients":["` + tt.item + `","salt"],"instructions":["cook"]}`
			s, err := ParseSuggestion(answer, tt.item)
			require.NoError(t, err)
			assert.Equal(t, tt.usesItem, s.UsesItem)
		})
	}
}
