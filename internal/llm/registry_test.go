package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"openai", KindOpenAI},
		{"OpenAI", KindOpenAI},
		{" gemini ", KindGemini},
		{"google", KindGemini},
		{"claude", KindClaude},
		{"anthropic", KindClaude},
		{"ollama", KindOllama},
		{"openrouter", KindOpenRouter},
		{"bard", Kind("bard")},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.in); got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultRegistry_Kinds(t *testing.T) {
	got := DefaultRegistry().Kinds()
	want := []Kind{KindClaude, KindGemini, KindOllama, KindOpenAI, KindOpenRouter}
	if len(got) != len(want) {
		t.Fatalf("Kinds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Kinds() = %v, want %v", got, want)
		}
	}
}

func TestSelect_Unsupported(t *testing.T) {
	_, err := Select(context.Background(), DefaultRegistry(), Config{Provider: "bard"})
	var unsupported *ErrUnsupportedProvider
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected ErrUnsupportedProvider, got %T (%v)", err, err)
	}
	if unsupported.Name != "bard" {
		t.Fatalf("expected name 'bard', got %q", unsupported.Name)
	}
	if !strings.Contains(err.Error(), "openai") {
		t.Fatalf("error should list supported providers: %v", err)
	}
}

func TestSelect_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "anthropic"

	h, err := Select(context.Background(), DefaultRegistry(), cfg)
	var auth *ErrAuth
	if !errors.As(err, &auth) {
		t.Fatalf("expected ErrAuth, got %T (%v)", err, err)
	}
	if auth.Provider != "Claude" {
		t.Fatalf("expected Claude, got %q", auth.Provider)
	}
	if h.Kind != KindClaude {
		t.Fatalf("handle should still carry the kind, got %q", h.Kind)
	}
}

func TestSelect_BuildsConfiguredProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	cfg.OpenAI.APIKey = "sk-test"

	h, err := Select(context.Background(), DefaultRegistry(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Kind != KindOpenAI || h.Name() != "OpenAI" {
		t.Fatalf("unexpected handle %+v", h)
	}
	if h.ModelID() != "gpt-4-turbo-preview" {
		t.Fatalf("unexpected model %q", h.ModelID())
	}
}

func TestSelect_ResolvesEveryCall(t *testing.T) {
	reg := NewRegistry()
	builds := 0
	reg.Register("mock", func(context.Context, Config) (Provider, error) {
		builds++
		return NewMockProvider(), nil
	})

	for i := 0; i < 3; i++ {
		if _, err := Select(context.Background(), reg, Config{Provider: "mock"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if builds != 3 {
		t.Fatalf("expected a fresh provider per call, got %d builds", builds)
	}
}

func TestSelect_FactoryError(t *testing.T) {
	reg := NewRegistry()
	reg.Register("broken", func(context.Context, Config) (Provider, error) {
		return nil, errors.New("boom")
	})

	_, err := Select(context.Background(), reg, Config{Provider: "broken"})
	if err == nil || !strings.Contains(err.Error(), "initializing broken provider") {
		t.Fatalf("unexpected error %v", err)
	}
}
