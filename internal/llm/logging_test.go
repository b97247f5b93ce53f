package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/quizsmith/quizsmith/internal/store"
)

type fakeRecorder struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeRecorder) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, data)
	return f.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Text:  "[]",
		Usage: Usage{InputTokens: 12, OutputTokens: 7, TotalTokens: 19},
	})
	rec := &fakeRecorder{}
	core, logs := observer.New(zapcore.DebugLevel)

	p := WithLogging(mock, "OpenAI", zap.New(core), rec)
	ctx := WithPurpose(context.Background(), PurposeQuizGeneration)

	resp, err := p.Generate(ctx, Request{Prompt: "p"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "[]" {
		t.Fatalf("response should pass through, got %q", resp.Text)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 recorded event, got %d", len(rec.events))
	}
	e := rec.events[0]
	if e.Provider != "OpenAI" || e.Model != "mock" || e.Purpose != PurposeQuizGeneration {
		t.Fatalf("unexpected event %+v", e)
	}
	if !e.Success || e.InputTokens != 12 || e.OutputTokens != 7 {
		t.Fatalf("unexpected event %+v", e)
	}

	if logs.FilterMessage("llm call").Len() != 1 {
		t.Fatalf("expected a debug log entry, got %v", logs.All())
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrAuth{Provider: "OpenAI", Err: errors.New("bad key")}})
	rec := &fakeRecorder{}
	core, logs := observer.New(zapcore.WarnLevel)

	p := WithLogging(mock, "OpenAI", zap.New(core), rec)
	_, err := p.Generate(context.Background(), Request{})

	var auth *ErrAuth
	if !errors.As(err, &auth) {
		t.Fatalf("error should pass through unchanged, got %T", err)
	}
	if len(rec.events) != 1 || rec.events[0].Success || rec.events[0].ErrorMessage == "" {
		t.Fatalf("unexpected events %+v", rec.events)
	}
	if rec.events[0].Purpose != "unknown" {
		t.Fatalf("expected unknown purpose, got %q", rec.events[0].Purpose)
	}
	if logs.FilterMessage("llm call failed").Len() != 1 {
		t.Fatalf("expected a warn log entry, got %v", logs.All())
	}
}

func TestLoggingProvider_RecorderErrorDoesNotFailCall(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "[]"})
	rec := &fakeRecorder{err: errors.New("disk full")}
	core, logs := observer.New(zapcore.WarnLevel)

	p := WithLogging(mock, "OpenAI", zap.New(core), rec)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logs.FilterMessage("failed to record llm call").Len() != 1 {
		t.Fatalf("expected recorder failure to be logged, got %v", logs.All())
	}
}

func TestLoggingProvider_NilRecorderAndLogger(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "[]"})
	p := WithLogging(mock, "OpenAI", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID should delegate, got %q", p.ModelID())
	}
}
