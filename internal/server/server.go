// Package server exposes quiz generation over HTTP.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/quizsmith/quizsmith/internal/config"
	"github.com/quizsmith/quizsmith/internal/llm"
	"github.com/quizsmith/quizsmith/internal/quiz"
)

// QuizGenerator is the part of quiz.Generator the server needs.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req quiz.GenerationRequest) (*quiz.Quiz, error)
	Config() llm.Config
}

// multipartOverhead is allowed on top of MaxFileSize for form fields and
// boundaries.
const multipartOverhead = 1 << 20

// Server is the HTTP front end.
type Server struct {
	app    *fiber.App
	gen    QuizGenerator
	cfg    config.ServerConfig
	logger *zap.Logger
}

// New builds the fiber app and registers routes.
func New(gen QuizGenerator, cfg config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{gen: gen, cfg: cfg, logger: logger}

	s.app = fiber.New(fiber.Config{
		AppName:               "quizsmith",
		BodyLimit:             int(cfg.MaxFileSize) + multipartOverhead,
		ReadTimeout:           30 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(s.requestLogger())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))

	api := s.app.Group("/api")
	api.Get("/health", s.health)

	quizGroup := api.Group("/quiz", s.requestTimeout())
	quizGroup.Post("/generate-from-text", s.generateFromText)
	quizGroup.Post("/generate-from-file", s.generateFromFile)

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the given port until Shutdown.
func (s *Server) Listen(port int) error {
	s.logger.Info("starting server", zap.Int("port", port))
	return s.app.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		s.logger.Info("http request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return nil
	}
}

// requestTimeout bounds each generation request. The deadline flows into
// the provider call through the user context.
func (s *Server) requestTimeout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.cfg.RequestTimeout <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), s.cfg.RequestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func (s *Server) health(c *fiber.Ctx) error {
	cfg := s.gen.Config()
	kind := llm.ParseKind(cfg.Provider)
	return c.JSON(fiber.Map{
		"status":   "ok",
		"provider": kind.DisplayName(),
		"model":    cfg.ModelFor(kind),
	})
}
