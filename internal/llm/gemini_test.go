package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-1.5-pro",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p
}

func geminiErrorHandler(status int, statusText, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    status,
				"message": message,
				"status":  statusText,
			},
		})
	}
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	var body struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
		GenerationConfig map[string]any `json:"generationConfig"`
	}
	handler := func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"role":  "model",
						"parts": []map[string]any{{"text": `[{"question":"Q?"}]`}},
					},
					"finishReason": "STOP",
				},
			},
			"usageMetadata": map[string]any{
				"promptTokenCount":     10,
				"candidatesTokenCount": 20,
				"totalTokenCount":      30,
			},
			"modelVersion": "gemini-1.5-pro-002",
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System: "SYSTEM",
		Prompt: "PROMPT",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != `[{"question":"Q?"}]` {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if resp.Model != "gemini-1.5-pro-002" {
		t.Fatalf("expected served model version, got %q", resp.Model)
	}
	if resp.Usage.TotalTokens != 30 {
		t.Fatalf("expected 30 total tokens, got %d", resp.Usage.TotalTokens)
	}

	if len(body.Contents) != 1 || len(body.Contents[0].Parts) != 1 {
		t.Fatalf("expected a single content blob, got %+v", body.Contents)
	}
	if got := body.Contents[0].Parts[0].Text; got != "SYSTEM\n\nPROMPT" {
		t.Fatalf("expected system and prompt joined, got %q", got)
	}
	if body.GenerationConfig["maxOutputTokens"] != float64(GenerationMaxTokens) {
		t.Fatalf("unexpected maxOutputTokens %v", body.GenerationConfig["maxOutputTokens"])
	}
}

func TestGeminiProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(error) bool
		want    string
	}{
		{
			name:    "quota",
			handler: geminiErrorHandler(http.StatusTooManyRequests, "RESOURCE_EXHAUSTED", "You exceeded your current quota, please check your plan and billing details."),
			check:   func(err error) bool { var e *ErrQuotaExceeded; return errors.As(err, &e) },
			want:    "ErrQuotaExceeded",
		},
		{
			name:    "invalid key",
			handler: geminiErrorHandler(http.StatusBadRequest, "INVALID_ARGUMENT", "API key not valid. Please pass a valid API key."),
			check:   func(err error) bool { var e *ErrAuth; return errors.As(err, &e) },
			want:    "ErrAuth",
		},
		{
			name:    "unknown model",
			handler: geminiErrorHandler(http.StatusNotFound, "NOT_FOUND", "models/gemini-9 is not found for API version v1beta"),
			check:   func(err error) bool { var e *ErrModelNotFound; return errors.As(err, &e) },
			want:    "ErrModelNotFound",
		},
		{
			name:    "unavailable",
			handler: geminiErrorHandler(http.StatusServiceUnavailable, "UNAVAILABLE", "The model is overloaded."),
			check:   func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) },
			want:    "ErrProviderUnavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestGeminiProvider(t, tt.handler)
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

func TestGeminiBlob(t *testing.T) {
	if got := geminiBlob(Request{Prompt: "only"}); got != "only" {
		t.Fatalf("expected prompt alone, got %q", got)
	}
	if got := geminiBlob(Request{System: "s", Prompt: "p"}); got != "s\n\np" {
		t.Fatalf("unexpected blob %q", got)
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-1.5-pro"},
		{"gemini-1.5-pro", "gemini-1.5-pro"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
