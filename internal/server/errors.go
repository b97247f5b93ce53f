package server

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/quizsmith/quizsmith/internal/quiz"
)

// statusFor maps a generation failure to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusGatewayTimeout
	}
	switch quiz.KindOf(err) {
	case quiz.KindInvalidRequest:
		return fiber.StatusBadRequest
	case quiz.KindQuotaExceeded:
		return fiber.StatusPaymentRequired
	case quiz.KindUnsupportedProvider, quiz.KindConfiguration:
		return fiber.StatusInternalServerError
	case quiz.KindAuth, quiz.KindModelNotFound, quiz.KindTransport,
		quiz.KindMalformedResponse, quiz.KindUnexpectedShape, quiz.KindInvalidQuestion:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) generationFailed(c *fiber.Ctx, label string, err error) error {
	status := statusFor(err)
	kind := quiz.KindOf(err)

	body := fiber.Map{
		"error":   label,
		"kind":    kind.String(),
		"message": err.Error(),
	}
	var qe *quiz.Error
	if errors.As(err, &qe) {
		body["message"] = qe.Message()
		body["detail"] = err.Error()
		if qe.Kind == quiz.KindInvalidQuestion {
			body["index"] = qe.Index
		}
	}

	log := s.logger.Warn
	if status >= fiber.StatusInternalServerError {
		log = s.logger.Error
	}
	log("quiz generation failed",
		zap.String("path", c.Path()),
		zap.String("kind", kind.String()),
		zap.Int("status", status),
		zap.Error(err),
	)

	return c.Status(status).JSON(body)
}

// errorHandler handles errors returned by handlers and middleware.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	s.logger.Error("unhandled error",
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
