package player

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/quizsmith/quizsmith/internal/router"
	"github.com/quizsmith/quizsmith/internal/screen"
	"github.com/quizsmith/quizsmith/internal/ui/components"
	"github.com/quizsmith/quizsmith/internal/ui/layout"
	"github.com/quizsmith/quizsmith/internal/ui/theme"
)

// ReviewScreen shows one answered question with the correct option and
// the explanation.
type ReviewScreen struct {
	a     *attempt
	index int
}

var _ screen.Screen = (*ReviewScreen)(nil)

func newReviewScreen(a *attempt, index int) *ReviewScreen {
	return &ReviewScreen{a: a, index: index}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "p", "h":
		if s.index > 0 {
			s.index--
		}
	case "right", "n", "l":
		if s.index < len(s.a.quiz.Questions)-1 {
			s.index++
		}
	case "enter", "backspace":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	q := s.a.quiz.Questions[s.index]
	chosen := s.a.answers[s.index]

	choice := components.NewMultiChoice(q.Question, q.Options, q.CorrectAnswer, chosen)
	choice.Reveal = true

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Question %d of %d", s.index+1, len(s.a.quiz.Questions))))
	b.WriteString("\n\n")
	b.WriteString(choice.View(width - 8))
	b.WriteString("\n")

	switch {
	case chosen == components.NoChoice:
		b.WriteString(theme.Muted.Render("Not answered"))
	case choice.IsCorrect():
		b.WriteString(theme.Correct.Render("Correct"))
	default:
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Your answer: %s", components.Labels[chosen])))
		b.WriteString("   ")
		b.WriteString(theme.Correct.Render(fmt.Sprintf("Correct answer: %s", components.Labels[q.CorrectAnswer])))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(width - 8).Render(q.Explanation))

	return theme.Card.Width(width - 2).Render(b.String())
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Prev/Next"},
		{Key: "Esc", Description: "Back"},
		{Key: "q", Description: "Quit"},
	}
}
