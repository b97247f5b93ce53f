package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(ClaudeConfig{
		APIKey:  "test-key",
		Model:   "claude-3-5-sonnet-20241022",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	return p
}

func anthropicErrorHandler(status int, errType, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type": "error",
			"error": map[string]any{
				"type":    errType,
				"message": message,
			},
		})
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": `[{"question":"Q?"}]`},
			},
			"model":       "claude-3-5-sonnet-20241022",
			"stop_reason": "end_turn",
			"usage": map[string]any{
				"input_tokens":  50,
				"output_tokens": 30,
			},
		})
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System: "You are a quiz writer.",
		Prompt: "Generate questions.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != `[{"question":"Q?"}]` {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}

	system, ok := body["system"].([]any)
	if !ok || len(system) != 1 {
		t.Fatalf("expected separate system field, got %v", body["system"])
	}
	if text := system[0].(map[string]any)["text"]; text != "You are a quiz writer." {
		t.Fatalf("unexpected system text %v", text)
	}
	messages := body["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("expected one user message, got %d", len(messages))
	}
	if body["temperature"] != GenerationTemperature {
		t.Fatalf("expected temperature %v, got %v", GenerationTemperature, body["temperature"])
	}
	if body["max_tokens"] != float64(GenerationMaxTokens) {
		t.Fatalf("expected max_tokens %d, got %v", GenerationMaxTokens, body["max_tokens"])
	}
}

func TestAnthropicProvider_MaxTokens(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": `[{"question":`}},
			"model":       "claude-3-5-sonnet-20241022",
			"stop_reason": "max_tokens",
			"usage":       map[string]any{"input_tokens": 1, "output_tokens": 4000},
		})
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{Prompt: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Truncated() {
		t.Fatalf("expected truncated response")
	}
}

func TestAnthropicProvider_NoRetries(t *testing.T) {
	var calls atomic.Int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		anthropicErrorHandler(http.StatusInternalServerError, "api_error", "Internal server error")(w, r)
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Prompt: "test"})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected a single attempt, got %d", n)
	}
}

func TestAnthropicProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(error) bool
		want    string
	}{
		{
			name:    "rate limit",
			handler: anthropicErrorHandler(http.StatusTooManyRequests, "rate_limit_error", "Rate limit exceeded"),
			check:   func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) },
			want:    "ErrRateLimit",
		},
		{
			name:    "credit balance",
			handler: anthropicErrorHandler(http.StatusBadRequest, "invalid_request_error", "Your credit balance is too low to access the Anthropic API."),
			check:   func(err error) bool { var e *ErrQuotaExceeded; return errors.As(err, &e) },
			want:    "ErrQuotaExceeded",
		},
		{
			name:    "invalid key",
			handler: anthropicErrorHandler(http.StatusUnauthorized, "authentication_error", "invalid x-api-key"),
			check:   func(err error) bool { var e *ErrAuth; return errors.As(err, &e) },
			want:    "ErrAuth",
		},
		{
			name:    "unknown model",
			handler: anthropicErrorHandler(http.StatusNotFound, "not_found_error", "model: claude-9"),
			check:   func(err error) bool { var e *ErrModelNotFound; return errors.As(err, &e) },
			want:    "ErrModelNotFound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, tt.handler)
			_, err := p.Generate(context.Background(), Request{Prompt: "test"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Fatalf("expected %s, got: %T (%v)", tt.want, err, err)
			}
		})
	}
}

func TestAnthropicProvider_ModelID(t *testing.T) {
	p := &AnthropicProvider{model: "claude-3-5-sonnet-20241022"}
	if p.ModelID() != "claude-3-5-sonnet-20241022" {
		t.Fatalf("expected 'claude-3-5-sonnet-20241022', got %q", p.ModelID())
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-sonnet", "claude-3-5-sonnet-20241022"},
		{"claude-haiku", "claude-3-5-haiku-20241022"},
		{"claude-3-opus-20240229", "claude-3-opus-20240229"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, anthropicModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
