package llm

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// OllamaProvider talks to a local Ollama server through its
// OpenAI-compatible endpoint, so the chat completion adapter is reused.
type OllamaProvider struct {
	*OpenAIProvider
}

// NewOllamaProvider creates a provider for the Ollama server at cfg.Host.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	if cfg.Model == "" {
		return nil, &ErrConfig{
			Provider: KindOllama.DisplayName(),
			Setting:  "OLLAMA_MODEL",
			Err:      errors.New("is not set"),
		}
	}

	base, err := url.Parse(cfg.Host)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &ErrConfig{
			Provider: KindOllama.DisplayName(),
			Setting:  "OLLAMA_HOST",
			Err:      fmt.Errorf("invalid URL %q", cfg.Host),
		}
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		// Ollama ignores the key but the client requires one.
		APIKey:  "ollama",
		Model:   cfg.Model,
		BaseURL: strings.TrimRight(base.String(), "/") + "/v1",
	})
	if err != nil {
		return nil, err
	}
	inner.name = KindOllama.DisplayName()
	inner.legacyMaxTokens = true

	return &OllamaProvider{OpenAIProvider: inner}, nil
}
