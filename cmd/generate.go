package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quizsmith/quizsmith/internal/extract"
	"github.com/quizsmith/quizsmith/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz from text or a document",
	Long: "Generate a multiple-choice quiz from --text or --file (.pdf, .docx, .txt).\n" +
		"Without --easy/--medium/--hard, --count questions are split evenly across tiers.",
	Example: "  quizsmith generate --file notes.pdf --count 12 --out quiz.json\n" +
		"  quizsmith generate --text \"$(cat chapter.txt)\" --easy 2 --medium 2 --hard 1",
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readContent(cmd)
		if err != nil {
			return err
		}
		req, err := buildRequest(cmd, content)
		if err != nil {
			return err
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if p, _ := cmd.Flags().GetString("provider"); p != "" {
			rt.cfg.LLM.Provider = p
		}

		rt.logger.Info("generating quiz",
			zap.String("provider", rt.cfg.LLM.Provider),
			zap.Int("questions", req.NumQuestions),
			zap.Int("content_chars", len(content)),
		)

		q, err := rt.generator().GenerateQuiz(cmd.Context(), req)
		if err != nil {
			return err
		}
		for _, w := range q.Warnings {
			rt.logger.Warn(w)
		}

		out, _ := cmd.Flags().GetString("out")
		return writeQuiz(cmd.OutOrStdout(), out, q)
	},
}

func init() {
	registerGenerateFlags(generateCmd)
}

func registerGenerateFlags(c *cobra.Command) {
	f := c.Flags()
	f.String("text", "", "Study material to generate questions from")
	f.String("file", "", "Document to generate questions from (.pdf, .docx, .txt)")
	f.IntP("count", "n", 10, "Number of questions, split evenly across difficulties")
	f.Int("easy", 0, "Number of easy questions")
	f.Int("medium", 0, "Number of medium questions")
	f.Int("hard", 0, "Number of hard questions")
	f.IntP("time-limit", "t", 10, "Time limit in minutes")
	f.StringP("out", "o", "", "Write the quiz JSON to this file instead of stdout")
	f.StringP("provider", "p", "", "AI provider (overrides AI_PROVIDER)")

	c.MarkFlagsMutuallyExclusive("text", "file")
	c.MarkFlagsOneRequired("text", "file")
}

func readContent(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		text, err := extract.FromFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return text, nil
	}
	text, _ := cmd.Flags().GetString("text")
	return text, nil
}

// buildRequest turns flags into a generation request. Explicit tier counts
// win over --count; if both are given they must agree.
func buildRequest(cmd *cobra.Command, content string) (quiz.GenerationRequest, error) {
	f := cmd.Flags()
	count, _ := f.GetInt("count")
	timeLimit, _ := f.GetInt("time-limit")

	plan := quiz.EvenPlan(count)
	if f.Changed("easy") || f.Changed("medium") || f.Changed("hard") {
		plan.Easy, _ = f.GetInt("easy")
		plan.Medium, _ = f.GetInt("medium")
		plan.Hard, _ = f.GetInt("hard")
		if !f.Changed("count") {
			count = plan.Total()
		}
	}

	if count < quiz.MinQuestions || count > quiz.MaxQuestions {
		return quiz.GenerationRequest{}, fmt.Errorf("number of questions must be between %d and %d, got %d", quiz.MinQuestions, quiz.MaxQuestions, count)
	}
	if err := plan.Check(count); err != nil {
		return quiz.GenerationRequest{}, err
	}

	return quiz.GenerationRequest{
		Content:          content,
		NumQuestions:     count,
		Difficulty:       plan,
		TimeLimitMinutes: timeLimit,
	}, nil
}

func writeQuiz(stdout io.Writer, path string, q *quiz.Quiz) (err error) {
	w := stdout
	if path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(q); err != nil {
		return fmt.Errorf("write quiz: %w", err)
	}
	return nil
}
