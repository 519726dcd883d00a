package recipe

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/internal/utils"
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/genai"
)

const temperature = 0.7

// Generator sends a prompt to a language model and returns its raw text answer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// suggestionSchema mirrors domain.RecipeSuggestion for Gemini structured output.
var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recipeTitle":   {Type: genai.TypeString},
		"estimatedTime": {Type: genai.TypeString, Description: "Total time, e.g. 20 minutes"},
		"difficulty": {
			Type: genai.TypeString,
			Enum: []string{string(domain.DifficultyEasy), string(domain.DifficultyMedium), string(domain.DifficultyHard)},
		},
		"usesItem":     {Type: genai.TypeString},
		"ingredients":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"instructions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"notes":        {Type: genai.TypeString},
	},
	Required: []string{"recipeTitle", "estimatedTime", "difficulty", "usesItem", "ingredients", "instructions"},
}

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY: %w", domain.ErrFeatureDisabled)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return result.Text(), nil
}

// OpenAIGenerator talks to any OpenAI-compatible endpoint.
type OpenAIGenerator struct {
	llm *openai.LLM
}

func NewOpenAIGenerator(apiKey, model, baseURL string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY: %w", domain.ErrFeatureDisabled)
	}
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return &OpenAIGenerator{llm: llm}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithJSONMode(),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	return out, nil
}

// NewGeneratorFromConfig picks the provider named by RECIPE_PROVIDER.
func NewGeneratorFromConfig(ctx context.Context) (Generator, error) {
	switch provider := strings.ToLower(utils.GetConfig("RECIPE_PROVIDER")); provider {
	case "", "gemini":
		g, err := NewGeminiGenerator(ctx, utils.GetConfig("GEMINI_API_KEY"), utils.GetConfig("GEMINI_MODEL"))
		if err != nil {
			return nil, err
		}
		return g, nil
	case "openai":
		g, err := NewOpenAIGenerator(
			utils.GetConfig("OPENAI_API_KEY"),
			utils.GetConfig("OPENAI_MODEL"),
			utils.GetConfig("OPENAI_BASE_URL"),
		)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrRecipeProviderUnknown, provider)
	}
}
