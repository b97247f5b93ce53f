package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quizsmith/quizsmith/internal/llm"
	"github.com/quizsmith/quizsmith/internal/store"
)

// Generator turns source text into validated questions using the
// configured provider. It holds no per-call state and is safe for
// concurrent use.
type Generator struct {
	registry *llm.Registry
	cfg      llm.Config
	logger   *zap.Logger
	recorder store.LLMEventRecorder
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithAuditRecorder records every provider call to r.
func WithAuditRecorder(r store.LLMEventRecorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// New returns a Generator. A nil registry means llm.DefaultRegistry and a
// nil logger discards output.
func New(reg *llm.Registry, cfg llm.Config, logger *zap.Logger, opts ...Option) *Generator {
	if reg == nil {
		reg = llm.DefaultRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		registry: reg,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the provider configuration the generator was built with.
func (g *Generator) Config() llm.Config {
	return g.cfg
}

// result is one successful pipeline run.
type result struct {
	questions []Question
	provider  string
	model     string
	warnings  []string
}

// Generate produces questions for content split according to plan.
// It either returns a fully validated list or fails with an *Error.
func (g *Generator) Generate(ctx context.Context, content string, numQuestions int, plan DifficultyPlan) ([]Question, error) {
	if err := checkRequest(content, numQuestions, plan); err != nil {
		return nil, err
	}
	res, err := g.run(ctx, content, numQuestions, plan)
	if err != nil {
		return nil, err
	}
	return res.questions, nil
}

// GenerateQuiz runs Generate and wraps the questions with the quiz settings.
func (g *Generator) GenerateQuiz(ctx context.Context, req GenerationRequest) (*Quiz, error) {
	if err := checkRequest(req.Content, req.NumQuestions, req.Difficulty); err != nil {
		return nil, err
	}
	if req.TimeLimitMinutes < MinTimeLimit || req.TimeLimitMinutes > MaxTimeLimit {
		return nil, invalidRequest("timeLimit must be between %d and %d minutes, got %d", MinTimeLimit, MaxTimeLimit, req.TimeLimitMinutes)
	}

	res, err := g.run(ctx, req.Content, req.NumQuestions, req.Difficulty)
	if err != nil {
		return nil, err
	}

	return &Quiz{
		ID:             uuid.NewString(),
		Questions:      res.questions,
		TimeLimit:      req.TimeLimitMinutes,
		TotalQuestions: req.NumQuestions,
		Difficulty:     req.Difficulty,
		Provider:       res.provider,
		Model:          res.model,
		Warnings:       res.warnings,
		CreatedAt:      g.now().UTC(),
	}, nil
}

func checkRequest(content string, numQuestions int, plan DifficultyPlan) error {
	if strings.TrimSpace(content) == "" {
		return invalidRequest("content is empty")
	}
	if numQuestions < MinQuestions || numQuestions > MaxQuestions {
		return invalidRequest("numQuestions must be between %d and %d, got %d", MinQuestions, MaxQuestions, numQuestions)
	}
	if err := plan.Check(numQuestions); err != nil {
		return invalidRequest("%v", err)
	}
	return nil
}

func (g *Generator) run(ctx context.Context, content string, numQuestions int, plan DifficultyPlan) (*result, error) {
	handle, err := llm.Select(ctx, g.registry, g.cfg)
	if err != nil {
		return nil, translate(handle.Name(), err)
	}
	name := handle.Name()
	provider := llm.WithLogging(handle.Provider, name, g.logger, g.recorder)

	req := llm.Request{
		System: SystemInstruction,
		Prompt: BuildPrompt(content, numQuestions, plan),
	}

	resp, err := provider.Generate(llm.WithPurpose(ctx, llm.PurposeQuizGeneration), req)
	if err != nil {
		return nil, translate(name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, newError(KindTransport, name, err)
	}

	records, err := Normalize(resp.Text)
	if err != nil {
		var qe *Error
		if resp.Truncated() && errors.As(err, &qe) && qe.Kind == KindMalformedResponse {
			qe.Detail = joinDetail(qe.Detail, fmt.Sprintf("output was truncated at the %d token limit", llm.GenerationMaxTokens))
		}
		return nil, withProvider(err, name)
	}

	questions, err := Validate(records)
	if err != nil {
		return nil, withProvider(err, name)
	}

	model := resp.Model
	if model == "" {
		model = provider.ModelID()
	}

	res := &result{questions: questions, provider: name, model: model}
	if len(questions) != numQuestions {
		g.logger.Warn("question count mismatch",
			zap.Int("requested", numQuestions),
			zap.Int("returned", len(questions)),
			zap.String("provider", name),
		)
		res.warnings = append(res.warnings, fmt.Sprintf("requested %d questions but %s returned %d", numQuestions, name, len(questions)))
	}
	return res, nil
}

// translate re-expresses a provider-layer error as a pipeline error kind.
func translate(provider string, err error) error {
	var (
		unsupported *llm.ErrUnsupportedProvider
		cfgErr      *llm.ErrConfig
		auth        *llm.ErrAuth
		quota       *llm.ErrQuotaExceeded
		notFound    *llm.ErrModelNotFound
		invalid     *llm.ErrInvalidResponse
		rate        *llm.ErrRateLimit
		unavailable *llm.ErrProviderUnavailable
	)

	switch {
	case errors.As(err, &unsupported):
		return newError(KindUnsupportedProvider, "", err)
	case errors.As(err, &cfgErr):
		return newError(KindConfiguration, cfgErr.Provider, err)
	case errors.As(err, &auth):
		return newError(KindAuth, provider, err)
	case errors.As(err, &quota):
		return newError(KindQuotaExceeded, provider, err)
	case errors.As(err, &notFound):
		return newError(KindModelNotFound, provider, err)
	case errors.As(err, &invalid):
		return newError(KindMalformedResponse, provider, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return newError(KindTransport, provider, err)
	case errors.As(err, &rate), errors.As(err, &unavailable):
		return newError(KindTransport, provider, err)
	case strings.Contains(strings.ToLower(err.Error()), "quota"):
		return newError(KindQuotaExceeded, provider, err)
	default:
		return newError(KindTransport, provider, err)
	}
}

func withProvider(err error, provider string) error {
	var qe *Error
	if errors.As(err, &qe) && qe.Provider == "" {
		qe.Provider = provider
	}
	return err
}

func joinDetail(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
