package server

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/quizsmith/quizsmith/internal/extract"
)

var formFields = []string{"numQuestions", "difficulty", "timeLimit"}

func (s *Server) generateFromText(c *fiber.Ctx) error {
	req, err := decodeText(c.Body())
	if err != nil {
		return s.rejectRequest(c, err)
	}

	q, err := s.gen.GenerateQuiz(c.UserContext(), req.toGeneration())
	if err != nil {
		return s.generationFailed(c, "Failed to generate quiz", err)
	}
	return c.JSON(fiber.Map{"success": true, "quiz": q})
}

func (s *Server) generateFromFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}
	if _, err := extract.TypeOf(fh.Filename); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file type. Only PDF, DOCX, and TXT files are allowed.",
		})
	}
	if fh.Size > s.cfg.MaxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Maximum size is %d bytes.", s.cfg.MaxFileSize),
		})
	}

	values := make(map[string]string, len(formFields))
	for _, name := range formFields {
		if v := c.FormValue(name); v != "" {
			values[name] = v
		}
	}
	req, err := decodeForm(values)
	if err != nil {
		return s.rejectRequest(c, err)
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	content, err := extract.FromReader(f, fh.Size, fh.Filename)
	length := utf8.RuneCountInString(content)
	if err != nil || length < MinContentLength {
		s.logger.Warn("document extraction failed",
			zap.String("filename", fh.Filename),
			zap.Int("length", length),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Document content is too short or could not be extracted",
		})
	}
	req.Content = content

	q, err := s.gen.GenerateQuiz(c.UserContext(), req.toGeneration())
	if err != nil {
		return s.generationFailed(c, "Failed to generate quiz from file", err)
	}
	return c.JSON(fiber.Map{"success": true, "quiz": q})
}

func (s *Server) rejectRequest(c *fiber.Ctx, err error) error {
	var verr *validationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation Error",
			"details": verr.Details,
		})
	case errors.Is(err, errDistribution):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": distributionMessage})
	default:
		return err
	}
}
