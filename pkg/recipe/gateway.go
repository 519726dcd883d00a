package recipe

import (
	"Smart-Shelf-Backend/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

const promptTemplate = `You are a culinary assistant helping a household use up food before it goes bad.
Suggest ONE simple recipe that prominently features "{{.item}}" and otherwise relies on common pantry ingredients.
{{- if .expiry}}
The item expires at {{.expiry}}, so prefer a quick preparation.
{{- end}}
{{- if .category}}
The item is in the {{.category}} category; choose a dish typical for that kind of food.
{{- end}}
The ingredients list MUST include "{{.item}}".
Answer with a single JSON object and nothing else, using exactly these fields:
{"recipeTitle": string, "estimatedTime": string, "difficulty": "Easy" | "Medium" | "Hard", "usesItem": string, "ingredients": [string], "instructions": [string], "notes": string (optional)}`

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Gateway turns an item into exactly one validated recipe suggestion.
type Gateway struct {
	generator Generator
	prompt    prompts.PromptTemplate
}

func NewGateway(generator Generator) *Gateway {
	return &Gateway{
		generator: generator,
		prompt:    prompts.NewPromptTemplate(promptTemplate, []string{"item", "expiry", "category"}),
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrSuggestionUnavailable, err)
}

func (g *Gateway) BuildPrompt(req domain.RecipeSuggestionRequest) (string, error) {
	return g.prompt.Format(map[string]any{
		"item":     strings.TrimSpace(req.ItemName),
		"expiry":   strings.TrimSpace(req.ExpiryDate),
		"category": strings.TrimSpace(req.Category),
	})
}

// Suggest never returns a partial suggestion: on any failure the result is
// the zero value and the error wraps domain.ErrSuggestionUnavailable.
func (g *Gateway) Suggest(ctx context.Context, req domain.RecipeSuggestionRequest) (domain.RecipeSuggestion, error) {
	if g == nil || g.generator == nil {
		return domain.RecipeSuggestion{}, unavailable(domain.ErrFeatureDisabled)
	}
	item := strings.TrimSpace(req.ItemName)
	if item == "" {
		return domain.RecipeSuggestion{}, unavailable(errors.New("item name is required"))
	}

	prompt, err := g.BuildPrompt(req)
	if err != nil {
		return domain.RecipeSuggestion{}, unavailable(err)
	}

	raw, err := g.generator.Generate(ctx, prompt)
	if err != nil {
		return domain.RecipeSuggestion{}, unavailable(err)
	}

	suggestion, err := ParseSuggestion(raw, item)
	if err != nil {
		return domain.RecipeSuggestion{}, unavailable(err)
	}
	return suggestion, nil
}

// extractJSON strips markdown fences and surrounding chatter from a model answer.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	if match := jsonObjectPattern.FindString(text); match != "" {
		text = match
	}
	return strings.TrimSpace(text)
}

// ParseSuggestion decodes and validates a model answer for item.
func ParseSuggestion(raw, item string) (domain.RecipeSuggestion, error) {
	text := extractJSON(raw)
	if text == "" {
		return domain.RecipeSuggestion{}, errors.New("empty model response")
	}

	var s domain.RecipeSuggestion
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return domain.RecipeSuggestion{}, fmt.Errorf("failed to parse model response: %w", err)
	}

	s.RecipeTitle = strings.TrimSpace(s.RecipeTitle)
	s.EstimatedTime = strings.TrimSpace(s.EstimatedTime)
	s.UsesItem = strings.TrimSpace(s.UsesItem)
	s.Notes = strings.TrimSpace(s.Notes)
	s.Ingredients = compact(s.Ingredients)
	s.Instructions = compact(s.Instructions)
	s.Difficulty = normalizeDifficulty(s.Difficulty)

	if err := validate(s, item); err != nil {
		return domain.RecipeSuggestion{}, err
	}
	return s, nil
}

func validate(s domain.RecipeSuggestion, item string) error {
	switch {
	case s.RecipeTitle == "":
		return fmt.Errorf("%w: missing recipeTitle", domain.ErrRecipeContractViolation)
	case s.EstimatedTime == "":
		return fmt.Errorf("%w: missing estimatedTime", domain.ErrRecipeContractViolation)
	case !s.Difficulty.Valid():
		return fmt.Errorf("%w: difficulty %q", domain.ErrRecipeContractViolation, s.Difficulty)
	case s.UsesItem == "":
		return fmt.Errorf("%w: missing usesItem", domain.ErrRecipeContractViolation)
	case len(s.Ingredients) == 0:
		return fmt.Errorf("%w: no ingredients", domain.ErrRecipeContractViolation)
	case len(s.Instructions) == 0:
		return fmt.Errorf("%w: no instructions", domain.ErrRecipeContractViolation)
	}

	needle := strings.ToLower(strings.TrimSpace(item))
	uses := strings.ToLower(s.UsesItem)
	if !strings.Contains(uses, needle) && !strings.Contains(needle, uses) {
		return fmt.Errorf("%w: usesItem %q does not match %q", domain.ErrRecipeContractViolation, s.UsesItem, item)
	}
	for _, ingredient := range s.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), needle) {
			return nil
		}
	}
	return fmt.Errorf("%w: ingredients do not mention %q", domain.ErrRecipeContractViolation, item)
}

func normalizeDifficulty(d domain.Difficulty) domain.Difficulty {
	for _, known := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		if strings.EqualFold(strings.TrimSpace(string(d)), string(known)) {
			return known
		}
	}
	return d
}

func compact(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
