package player

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizsmith/quizsmith/internal/screen"
	"github.com/quizsmith/quizsmith/internal/ui/layout"
	"github.com/quizsmith/quizsmith/internal/ui/theme"
)

const bannerArt = `
 ╔═╗ ╦ ╦ ╦ ╔═╗ ╔═╗ ╔╦╗ ╦ ╔╦╗ ╦ ╦
 ║═╬╗║ ║ ║ ╔═╝ ╚═╗ ║║║ ║  ║  ╠═╣
 ╚═╝╚╚═╝ ╩ ╚═╝ ╚═╝ ╩ ╩ ╩  ╩  ╩ ╩`

const bannerCompact = "Q U I Z S M I T H"

// startMsg begins the attempt and starts the countdown.
type startMsg struct{}

// StartScreen summarizes the quiz and waits for the player to begin.
type StartScreen struct {
	a       *attempt
	started bool
}

var _ screen.Screen = (*StartScreen)(nil)

func newStartScreen(a *attempt) *StartScreen {
	return &StartScreen{a: a}
}

func (s *StartScreen) Init() tea.Cmd {
	return nil
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.started {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "space", " ", "s":
		s.started = true
		return s, func() tea.Msg { return startMsg{} }
	}
	return s, nil
}

// renderBanner uses a compact fallback for terminals narrower than 40 columns.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

func (s *StartScreen) View(width, height int) string {
	q := s.a.quiz

	sections := []string{renderBanner(width), ""}
	sections = append(sections, theme.Body.Render(fmt.Sprintf("%d questions", len(q.Questions))))

	plan := q.Difficulty
	if plan.Total() > 0 {
		sections = append(sections, strings.Join([]string{
			theme.Easy.Render(fmt.Sprintf("%d easy", plan.Easy)),
			theme.Medium.Render(fmt.Sprintf("%d medium", plan.Medium)),
			theme.Hard.Render(fmt.Sprintf("%d hard", plan.Hard)),
		}, theme.Muted.Render(" · ")))
	}

	if q.TimeLimit > 0 {
		sections = append(sections, theme.Body.Render(fmt.Sprintf("Time limit: %d min", q.TimeLimit)))
	} else {
		sections = append(sections, theme.Muted.Render("No time limit"))
	}

	sections = append(sections, "", theme.Hint.Render("press enter to start"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func (s *StartScreen) Title() string {
	return "Ready"
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "q", Description: "Quit"},
	}
}
