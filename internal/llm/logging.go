package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quizsmith/quizsmith/internal/store"
)

// LoggingProvider is a decorator that logs every LLM call and, when a
// recorder is attached, appends it to the audit log. Only metadata is
// recorded; prompts and completions are never stored.
type LoggingProvider struct {
	inner    Provider
	name     string
	logger   *zap.Logger
	recorder store.LLMEventRecorder
}

// WithLogging wraps a Provider with call logging. recorder may be nil.
func WithLogging(p Provider, name string, logger *zap.Logger, recorder store.LLMEventRecorder) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, name: name, logger: logger, recorder: recorder}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:  l.name,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}

	fields := []zap.Field{
		zap.String("provider", data.Provider),
		zap.String("model", data.Model),
		zap.String("purpose", purpose),
		zap.Duration("latency", latency),
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm call failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Debug("llm call",
			append(fields,
				zap.Int("input_tokens", data.InputTokens),
				zap.Int("output_tokens", data.OutputTokens),
				zap.String("stop_reason", resp.StopReason),
			)...)
	}

	if l.recorder != nil {
		// The audit write must not outlive or fail the generation call.
		if logErr := l.recorder.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.logger.Warn("failed to record llm call", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
