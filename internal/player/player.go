package player

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/quizsmith/quizsmith/internal/quiz"
	"github.com/quizsmith/quizsmith/internal/router"
	"github.com/quizsmith/quizsmith/internal/screen"
	"github.com/quizsmith/quizsmith/internal/ui/layout"
	"github.com/quizsmith/quizsmith/internal/ui/theme"
)

// warnThreshold colors the timer once less than this much time remains.
const warnThreshold = time.Minute

type tickMsg time.Time

// Model is the root Bubble Tea model of the quiz player.
type Model struct {
	router    *router.Router
	a         *attempt
	remaining time.Duration
	timed     bool
	started   bool
	finished  bool
	width     int
	height    int
}

// New returns a player for q. A quiz with a time limit counts down from
// TimeLimit minutes once started and finishes itself when time runs out.
func New(q *quiz.Quiz) Model {
	a := newAttempt(q)
	return Model{
		router:    router.New(newStartScreen(a)),
		a:         a,
		remaining: time.Duration(q.TimeLimit) * time.Minute,
		timed:     q.TimeLimit > 0,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case startMsg:
		if m.started {
			return m, nil
		}
		m.started = true
		cmd := m.router.Replace(newQuestionScreen(m.a))
		if m.timed {
			cmd = tea.Batch(cmd, tickCmd())
		}
		return m, cmd

	case tickMsg:
		if !m.started || m.finished {
			return m, nil
		}
		m.remaining -= time.Second
		if m.remaining <= 0 {
			m.remaining = 0
			return m.finish(true)
		}
		return m, tickCmd()

	case finishMsg:
		if m.finished {
			return m, nil
		}
		return m.finish(msg.timedOut)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m Model) finish(timedOut bool) (tea.Model, tea.Cmd) {
	m.finished = true
	cmd := m.router.Replace(newResultsScreen(m.a, timedOut))
	return m, cmd
}

// Finished reports whether the attempt has ended.
func (m Model) Finished() bool {
	return m.finished
}

// Answers returns the chosen option per question.
func (m Model) Answers() []int {
	out := make([]int, len(m.a.answers))
	copy(out, m.a.answers)
	return out
}

// Result scores the current answers.
func (m Model) Result() Result {
	return Score(m.a.quiz, m.a.answers)
}

// Remaining is the time left on the countdown.
func (m Model) Remaining() time.Duration {
	return m.remaining
}

func (m Model) status() string {
	if m.finished {
		r := m.Result()
		return theme.Title.Render(fmt.Sprintf("Score %d/%d", r.Correct, r.Total))
	}

	counter := theme.Muted.Render(fmt.Sprintf("%d/%d answered", m.a.answered(), len(m.a.answers)))
	if !m.timed {
		return counter
	}

	style := theme.TimerNormal
	switch {
	case m.remaining <= 0:
		style = theme.TimerExpired
	case m.remaining <= warnThreshold:
		style = theme.TimerWarning
	}
	return counter + "   " + style.Render(formatClock(m.remaining))
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)

	hints := []layout.KeyHint{{Key: "q", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run plays q in the terminal and returns the final score.
func Run(q *quiz.Quiz) (Result, error) {
	final, err := tea.NewProgram(New(q)).Run()
	if err != nil {
		return Result{}, fmt.Errorf("running player: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.Result(), nil
	}
	return Score(q, nil), nil
}
