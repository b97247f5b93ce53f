package quiz

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the tier a question is written for.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes a provider-supplied difficulty label.
// Anything unrecognized is reported as not ok.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	}
	return "", false
}

// Request bounds shared by every entry point.
const (
	MinQuestions = 1
	MaxQuestions = 50
	MinTimeLimit = 1
	MaxTimeLimit = 180
)

// DifficultyPlan is the caller's split of the requested questions across tiers.
type DifficultyPlan struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// Total returns the number of questions the plan asks for.
func (p DifficultyPlan) Total() int {
	return p.Easy + p.Medium + p.Hard
}

// Check verifies the plan has no negative tier and sums to numQuestions.
func (p DifficultyPlan) Check(numQuestions int) error {
	if p.Easy < 0 || p.Medium < 0 || p.Hard < 0 {
		return fmt.Errorf("difficulty counts must not be negative (easy=%d, medium=%d, hard=%d)", p.Easy, p.Medium, p.Hard)
	}
	if p.Total() != numQuestions {
		return fmt.Errorf("difficulty distribution must sum to total number of questions (got %d, want %d)", p.Total(), numQuestions)
	}
	return nil
}

// EvenPlan splits n questions across the three tiers. Any remainder goes to
// medium first, then easy.
func EvenPlan(n int) DifficultyPlan {
	if n <= 0 {
		return DifficultyPlan{}
	}
	base := n / 3
	p := DifficultyPlan{Easy: base, Medium: base, Hard: base}
	switch n % 3 {
	case 1:
		p.Medium++
	case 2:
		p.Medium++
		p.Easy++
	}
	return p
}

// Question is one validated multiple-choice question.
type Question struct {
	ID            int        `json:"id"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Explanation   string     `json:"explanation"`
	Difficulty    Difficulty `json:"difficulty"`
}

// GenerationRequest is everything needed to produce a quiz.
type GenerationRequest struct {
	Content          string
	NumQuestions     int
	Difficulty       DifficultyPlan
	TimeLimitMinutes int
}

// Quiz is a generated quiz together with the settings it was generated for.
type Quiz struct {
	ID             string         `json:"id"`
	Questions      []Question     `json:"questions"`
	TimeLimit      int            `json:"timeLimit"`
	TotalQuestions int            `json:"totalQuestions"`
	Difficulty     DifficultyPlan `json:"difficulty"`
	Provider       string         `json:"provider,omitempty"`
	Model          string         `json:"model,omitempty"`
	Warnings       []string       `json:"warnings,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// RawQuestion is one record of provider output before validation. Numbers
// are kept as json.Number. A nil RawQuestion stands for an element that
// was not a JSON object.
type RawQuestion map[string]any
