package player

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/quizsmith/quizsmith/internal/screen"
	"github.com/quizsmith/quizsmith/internal/ui/components"
	"github.com/quizsmith/quizsmith/internal/ui/layout"
	"github.com/quizsmith/quizsmith/internal/ui/theme"
)

// QuestionScreen shows one question at a time and records answers.
type QuestionScreen struct {
	a      *attempt
	choice components.MultiChoice
}

var _ screen.Screen = (*QuestionScreen)(nil)

func newQuestionScreen(a *attempt) *QuestionScreen {
	s := &QuestionScreen{a: a}
	s.load()
	return s
}

func (s *QuestionScreen) load() {
	q := s.a.quiz.Questions[s.a.current]
	s.choice = components.NewMultiChoice(q.Question, q.Options, q.CorrectAnswer, s.a.answers[s.a.current])
}

func (s *QuestionScreen) move(delta int) {
	next := s.a.current + delta
	if next < 0 || next >= len(s.a.quiz.Questions) {
		return
	}
	s.a.current = next
	s.load()
}

func (s *QuestionScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "p", "h":
		s.move(-1)
		return s, nil
	case "right", "n", "l", "tab":
		s.move(1)
		return s, nil
	case "f":
		return s, func() tea.Msg { return finishMsg{} }
	}

	s.choice, _ = s.choice.Update(msg)
	before := s.a.answers[s.a.current]
	s.a.answers[s.a.current] = s.choice.Chosen

	// Confirming with enter moves on to the next question.
	if kmsg.String() == "enter" && before == components.NoChoice && s.choice.Answered() {
		s.move(1)
	}
	return s, nil
}

func (s *QuestionScreen) View(width, height int) string {
	q := s.a.quiz.Questions[s.a.current]
	total := len(s.a.quiz.Questions)
	inner := width - 8
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Question %d of %d", s.a.current+1, total)))
	b.WriteString("   ")
	b.WriteString(theme.DifficultyStyle(string(q.Difficulty)).Render(strings.ToUpper(string(q.Difficulty))))
	b.WriteString("\n\n")

	b.WriteString(s.choice.View(inner))
	b.WriteString("\n")

	answered := s.a.answered()
	bar := components.NewProgressBar(
		fmt.Sprintf("Answered %d/%d", answered, total),
		float64(answered)/float64(total),
		true,
		inner,
	)
	b.WriteString(bar.View())

	if answered == total {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("All questions answered. Press f to finish."))
	}

	return theme.Card.Width(width - 2).Render(b.String())
}

func (s *QuestionScreen) Title() string {
	return "Quiz"
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓/1-4", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "f", Description: "Finish"},
		{Key: "q", Description: "Quit"},
	}
}
