package llm

import "strings"

// ModelCost holds per-million-token pricing for a model.
// Prices are in USD per 1 million tokens, sourced from models.dev.
type ModelCost struct {
	InputPerMTok  float64 // USD per 1M input tokens
	OutputPerMTok float64 // USD per 1M output tokens
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// Vendor-prefixed IDs as used by OpenRouter ("openai/gpt-4o-mini") and
// Ollama tags ("llama3.1:8b") are reduced to their base name first.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	if i := strings.LastIndex(modelID, "/"); i >= 0 {
		return LookupCost(modelID[i+1:])
	}
	if i := strings.Index(modelID, ":"); i >= 0 {
		return LookupCost(modelID[:i])
	}
	return nil
}

// EstimateCost returns the USD cost of a call, and false when the model's
// pricing is unknown. Local models are free.
func EstimateCost(provider, modelID string, inputTokens, outputTokens int) (float64, bool) {
	if ParseKind(provider) == KindOllama {
		return 0, true
	}
	c := LookupCost(modelID)
	if c == nil {
		return 0, false
	}
	return c.Cost(inputTokens, outputTokens), true
}

// modelCosts covers the default and friendly-name models of each provider
// plus common OpenRouter picks. USD per million tokens, from models.dev.
var modelCosts = map[string]ModelCost{
	// Claude
	"claude-3-5-haiku-20241022":  {0.8, 4},
	"claude-3-5-sonnet-20241022": {3, 15},
	"claude-3-7-sonnet-20250219": {3, 15},
	"claude-3-haiku-20240307":    {0.25, 1.25},
	"claude-3-opus-20240229":     {15, 75},
	"claude-haiku-4-5":           {1, 5},
	"claude-sonnet-4-5":          {3, 15},
	"claude-opus-4-5":            {5, 25},

	// OpenAI
	"gpt-3.5-turbo":       {0.5, 1.5},
	"gpt-4":               {30, 60},
	"gpt-4-turbo":         {10, 30},
	"gpt-4-turbo-preview": {10, 30},
	"gpt-4.1":             {2, 8},
	"gpt-4.1-mini":        {0.4, 1.6},
	"gpt-4o":              {2.5, 10},
	"gpt-4o-mini":         {0.15, 0.6},
	"gpt-5":               {1.25, 10},
	"gpt-5-mini":          {0.25, 2},
	"o3-mini":             {1.1, 4.4},
	"o4-mini":             {1.1, 4.4},

	// Gemini
	"gemini-1.5-flash": {0.075, 0.3},
	"gemini-1.5-pro":   {1.25, 5},
	"gemini-2.0-flash": {0.1, 0.4},
	"gemini-2.5-flash": {0.3, 2.5},
	"gemini-2.5-pro":   {1.25, 10},

	// Open-weight models as served by OpenRouter
	"llama-3.1-8b-instruct":  {0.02, 0.05},
	"llama-3.1-70b-instruct": {0.1, 0.28},
	"mistral-nemo":           {0.02, 0.04},
	"qwen-2.5-72b-instruct":  {0.12, 0.39},
}
