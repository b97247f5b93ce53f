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

// ResultsScreen shows the score and a per-question summary.
type ResultsScreen struct {
	a        *attempt
	result   Result
	timedOut bool
	cursor   int
}

var _ screen.Screen = (*ResultsScreen)(nil)

func newResultsScreen(a *attempt, timedOut bool) *ResultsScreen {
	return &ResultsScreen{
		a:        a,
		result:   Score(a.quiz, a.answers),
		timedOut: timedOut,
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.a.quiz.Questions)-1 {
			s.cursor++
		}
	case "enter":
		review := newReviewScreen(s.a, s.cursor)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: review} }
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	var b strings.Builder

	if s.timedOut {
		b.WriteString(theme.Incorrect.Render("Time's up!"))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Title.Render(fmt.Sprintf("Score: %d / %d  (%.0f%%)", s.result.Correct, s.result.Total, s.result.Percent)))
	b.WriteString("\n")
	if s.result.Unanswered > 0 {
		b.WriteString(theme.Muted.Render(fmt.Sprintf("%d unanswered", s.result.Unanswered)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", s.result.Percent/100, true, width-8).View())
	b.WriteString("\n\n")

	for i, q := range s.a.quiz.Questions {
		var mark string
		switch chosen := s.a.answers[i]; {
		case chosen == components.NoChoice:
			mark = theme.Muted.Render("–")
		case chosen == q.CorrectAnswer:
			mark = theme.Correct.Render("✓")
		default:
			mark = theme.Incorrect.Render("✗")
		}

		prefix := "  "
		style := theme.Body
		if i == s.cursor {
			prefix = "▸ "
			style = theme.Cursor
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, mark, style.Render(fmt.Sprintf("%d. %s", i+1, truncate(q.Question, width-14)))))
	}

	return theme.Card.Width(width - 2).Render(b.String())
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Review"},
		{Key: "q", Description: "Quit"},
	}
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
