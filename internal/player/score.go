// Package player runs a generated quiz in the terminal.
package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/quizsmith/quizsmith/internal/quiz"
	"github.com/quizsmith/quizsmith/internal/ui/components"
)

// Result is the outcome of one attempt.
type Result struct {
	Correct    int
	Total      int
	Unanswered int
	Percent    float64
}

// Score grades answers against q. answers[i] is the chosen option for
// question i, or components.NoChoice; missing entries count as unanswered.
func Score(q *quiz.Quiz, answers []int) Result {
	r := Result{Total: len(q.Questions)}
	for i, question := range q.Questions {
		chosen := components.NoChoice
		if i < len(answers) {
			chosen = answers[i]
		}
		switch {
		case chosen == components.NoChoice:
			r.Unanswered++
		case chosen == question.CorrectAnswer:
			r.Correct++
		}
	}
	if r.Total > 0 {
		r.Percent = float64(r.Correct) / float64(r.Total) * 100
	}
	return r
}

// Load reads a quiz saved as JSON, either bare or wrapped in the HTTP
// response envelope {"success": true, "quiz": {...}}.
func Load(path string) (*quiz.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Quiz *quiz.Quiz `json:"quiz"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Quiz != nil {
		return checkLoaded(envelope.Quiz)
	}

	var q quiz.Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("parsing quiz %s: %w", path, err)
	}
	return checkLoaded(&q)
}

func checkLoaded(q *quiz.Quiz) (*quiz.Quiz, error) {
	if len(q.Questions) == 0 {
		return nil, errors.New("quiz has no questions")
	}
	for i, question := range q.Questions {
		if len(question.Options) != quiz.OptionCount {
			return nil, fmt.Errorf("question %d has %d options", i+1, len(question.Options))
		}
		if question.CorrectAnswer < 0 || question.CorrectAnswer >= quiz.OptionCount {
			return nil, fmt.Errorf("question %d has correctAnswer %d", i+1, question.CorrectAnswer)
		}
	}
	return q, nil
}
