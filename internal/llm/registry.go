package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Kind identifies a provider family.
type Kind string

const (
	KindOpenAI     Kind = "openai"
	KindGemini     Kind = "gemini"
	KindClaude     Kind = "claude"
	KindOllama     Kind = "ollama"
	KindOpenRouter Kind = "openrouter"
)

var kindAliases = map[string]Kind{
	"google":    KindGemini,
	"anthropic": KindClaude,
}

var displayNames = map[Kind]string{
	KindOpenAI:     "OpenAI",
	KindGemini:     "Gemini",
	KindClaude:     "Claude",
	KindOllama:     "Ollama",
	KindOpenRouter: "OpenRouter",
}

// ParseKind normalizes a configured provider name. Aliases resolve to their
// canonical kind; anything else is returned lowercased and left for the
// registry to accept or reject.
func ParseKind(name string) Kind {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := kindAliases[n]; ok {
		return k
	}
	return Kind(n)
}

// DisplayName is the vendor name used in user-facing messages.
func (k Kind) DisplayName() string {
	if n, ok := displayNames[k]; ok {
		return n
	}
	return string(k)
}

// Factory builds a provider from configuration.
type Factory func(ctx context.Context, cfg Config) (Provider, error)

// Registry maps provider kinds to the factories that build them.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[Kind]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Kind]Factory)}
}

// DefaultRegistry returns a registry with every built-in adapter.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindOpenAI, func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenAIProvider(cfg.OpenAI)
	})
	r.Register(KindGemini, func(ctx context.Context, cfg Config) (Provider, error) {
		return NewGeminiProvider(ctx, cfg.Gemini)
	})
	r.Register(KindClaude, func(_ context.Context, cfg Config) (Provider, error) {
		return NewAnthropicProvider(cfg.Claude)
	})
	r.Register(KindOllama, func(_ context.Context, cfg Config) (Provider, error) {
		return NewOllamaProvider(cfg.Ollama)
	})
	r.Register(KindOpenRouter, func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenRouterProvider(cfg.OpenRouter)
	})
	return r
}

// Register adds or replaces the factory for a kind.
func (r *Registry) Register(kind Kind, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

// Resolve returns the factory for a kind, or *ErrUnsupportedProvider.
func (r *Registry) Resolve(kind Kind) (Factory, error) {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, &ErrUnsupportedProvider{Name: string(kind), Supported: r.Kinds()}
	}
	return f, nil
}

// Kinds lists the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Handle is a provider resolved for one generation call.
type Handle struct {
	Kind Kind
	Provider
}

// Name is the vendor name used in messages about this handle.
func (h Handle) Name() string {
	return h.Kind.DisplayName()
}

// Select resolves the configured provider. It performs no caching; every
// call validates the configuration and builds a fresh adapter.
func Select(ctx context.Context, reg *Registry, cfg Config) (Handle, error) {
	kind := ParseKind(cfg.Provider)

	factory, err := reg.Resolve(kind)
	if err != nil {
		return Handle{Kind: kind}, err
	}

	if err := cfg.Validate(kind); err != nil {
		return Handle{Kind: kind}, err
	}

	p, err := factory(ctx, cfg)
	if err != nil {
		return Handle{Kind: kind}, fmt.Errorf("initializing %s provider: %w", kind, err)
	}

	return Handle{Kind: kind, Provider: p}, nil
}
