package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `{"a":1}`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: `{"b":2}`, StopReason: StopMaxTokens},
	)

	resp1, err := mock.Generate(context.Background(), Request{Prompt: "first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Text)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != StopEnd {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Prompt: "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Text)
	}
	if !resp2.Truncated() {
		t.Fatal("expected second response to be truncated")
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: `[]`})

	_, _ = mock.Generate(context.Background(), Request{System: "sys", Prompt: "hello"})

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" || mock.Calls[0].Prompt != "hello" {
		t.Fatalf("unexpected recorded call %+v", mock.Calls[0])
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrQuotaExceeded{Provider: "OpenAI"}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	var quota *ErrQuotaExceeded
	if !errors.As(err, &quota) {
		t.Fatalf("expected ErrQuotaExceeded, got: %T", err)
	}
}

func TestMockProvider_BlockHonorsContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "[]"})
	mock.Block = make(chan struct{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := mock.Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
	mock.Model = "mock-large"
	if mock.ModelID() != "mock-large" {
		t.Fatalf("expected 'mock-large', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeQuizGeneration)
	if p := PurposeFrom(ctx); p != PurposeQuizGeneration {
		t.Fatalf("expected %q, got %q", PurposeQuizGeneration, p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		cfg      Config
		wantAuth   bool
		wantConfig bool
		wantErr    bool
	}{
		{name: "claude without key", kind: KindClaude, cfg: Config{}, wantAuth: true, wantErr: true},
		{name: "claude with key", kind: KindClaude, cfg: Config{Claude: ClaudeConfig{APIKey: "sk-test"}}},
		{name: "openai without key", kind: KindOpenAI, cfg: Config{}, wantAuth: true, wantErr: true},
		{name: "openai with key", kind: KindOpenAI, cfg: Config{OpenAI: OpenAIConfig{APIKey: "sk-test"}}},
		{name: "gemini without key", kind: KindGemini, cfg: Config{}, wantAuth: true, wantErr: true},
		{name: "openrouter without key", kind: KindOpenRouter, cfg: Config{}, wantAuth: true, wantErr: true},
		{name: "ollama needs no key", kind: KindOllama, cfg: Config{Ollama: OllamaConfig{Host: "http://localhost:11434"}}},
		{name: "ollama needs a host", kind: KindOllama, cfg: Config{}, wantConfig: true, wantErr: true},
		{name: "unregistered kinds are not validated", kind: Kind("mock"), cfg: Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.kind)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var auth *ErrAuth
			if errors.As(err, &auth) != tt.wantAuth {
				t.Fatalf("Validate() error = %T, wantAuth %v", err, tt.wantAuth)
			}
			if tt.wantAuth && auth.Provider != tt.kind.DisplayName() {
				t.Fatalf("auth error names %q, want %q", auth.Provider, tt.kind.DisplayName())
			}
			var cfgErr *ErrConfig
			if errors.As(err, &cfgErr) != tt.wantConfig {
				t.Fatalf("Validate() error = %T, wantConfig %v", err, tt.wantConfig)
			}
			if tt.wantConfig && cfgErr.Setting != "OLLAMA_HOST" {
				t.Fatalf("config error names %q, want OLLAMA_HOST", cfgErr.Setting)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "openai" {
		t.Fatalf("expected openai default, got %q", cfg.Provider)
	}
	want := map[Kind]string{
		KindOpenAI: "gpt-4-turbo-preview",
		KindGemini: "gemini-1.5-pro",
		KindClaude: "claude-3-5-sonnet-20241022",
	}
	for kind, model := range want {
		if got := cfg.ModelFor(kind); got != model {
			t.Errorf("ModelFor(%s) = %q, want %q", kind, got, model)
		}
	}
}
