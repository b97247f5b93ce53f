package llm

import (
	"errors"
	"fmt"
)

// Config holds all LLM provider configuration. It is built once by the
// caller and passed explicitly to whatever needs a provider.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openai", "gemini" (or "google"), "claude" (or "anthropic"),
	// "ollama", "openrouter".
	Provider string

	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	Claude     ClaudeConfig
	Ollama     OllamaConfig
	OpenRouter OpenRouterConfig
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4-turbo-preview"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-1.5-pro"
	BaseURL string
}

// ClaudeConfig holds Anthropic-specific configuration.
type ClaudeConfig struct {
	APIKey  string
	Model   string // Default: "claude-3-5-sonnet-20241022"
	BaseURL string
}

// OllamaConfig holds configuration for a local Ollama server.
type OllamaConfig struct {
	Host  string // Default: "http://localhost:11434"
	Model string // Default: "llama3.1"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "openai/gpt-4o-mini"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with the stock model for every provider.
func DefaultConfig() Config {
	return Config{
		Provider: string(KindOpenAI),
		OpenAI: OpenAIConfig{
			Model: "gpt-4-turbo-preview",
		},
		Gemini: GeminiConfig{
			Model: "gemini-1.5-pro",
		},
		Claude: ClaudeConfig{
			Model: "claude-3-5-sonnet-20241022",
		},
		Ollama: OllamaConfig{
			Host:  "http://localhost:11434",
			Model: "llama3.1",
		},
		OpenRouter: OpenRouterConfig{
			Model:   "openai/gpt-4o-mini",
			BaseURL: defaultOpenRouterBaseURL,
		},
	}
}

// Validate checks that the given provider has what it needs to make a call.
// A missing credential is reported as *ErrAuth naming the provider.
func (c Config) Validate(kind Kind) error {
	missing := func(env string) error {
		return &ErrAuth{
			Provider: kind.DisplayName(),
			Err:      fmt.Errorf("%s is not set", env),
		}
	}

	switch kind {
	case KindOpenAI:
		if c.OpenAI.APIKey == "" {
			return missing("OPENAI_API_KEY")
		}
	case KindGemini:
		if c.Gemini.APIKey == "" {
			return missing("GEMINI_API_KEY")
		}
	case KindClaude:
		if c.Claude.APIKey == "" {
			return missing("CLAUDE_API_KEY")
		}
	case KindOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return missing("OPENROUTER_API_KEY")
		}
	case KindOllama:
		if c.Ollama.Host == "" {
			return &ErrConfig{
				Provider: kind.DisplayName(),
				Setting:  "OLLAMA_HOST",
				Err:      errors.New("is not set"),
			}
		}
	}
	return nil
}

// ModelFor returns the configured model for the given provider.
func (c Config) ModelFor(kind Kind) string {
	switch kind {
	case KindOpenAI:
		return c.OpenAI.Model
	case KindGemini:
		return c.Gemini.Model
	case KindClaude:
		return c.Claude.Model
	case KindOllama:
		return c.Ollama.Model
	case KindOpenRouter:
		return c.OpenRouter.Model
	}
	return ""
}
