package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizsmith/quizsmith/internal/ui/theme"
)

// Labels prefixes options A-D.
var Labels = []string{"A", "B", "C", "D"}

// NoChoice marks an unanswered question.
const NoChoice = -1

// MultiChoice is a four-option selector. The chosen option can be changed
// until Reveal is set, after which the component only renders.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Cursor       int
	Chosen       int
	Reveal       bool
}

// NewMultiChoice creates a selector. chosen is NoChoice or a previous answer.
func NewMultiChoice(question string, options []string, correctIndex, chosen int) MultiChoice {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	}
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Cursor:       cursor,
		Chosen:       chosen,
	}
}

// Update handles cursor movement and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Reveal {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", "space", " ":
		m.Chosen = m.Cursor
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(m.Options) {
			m.Cursor = i
			m.Chosen = i
		}
	}

	return m, nil
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.Chosen != NoChoice
}

// IsCorrect reports whether the chosen option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Chosen == m.CorrectIndex
}

// View renders the question and its options wrapped to width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder

	question := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if width > 0 {
		question = question.Width(width)
	}
	b.WriteString(question.Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := fmt.Sprintf("%d", i+1)
		if i < len(Labels) {
			label = Labels[i]
		}

		marker := "  "
		if i == m.Cursor && !m.Reveal {
			marker = "▸ "
		}
		check := " "
		if i == m.Chosen {
			check = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", marker, check, label, opt)

		b.WriteString(m.optionStyle(i).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func (m MultiChoice) optionStyle(i int) lipgloss.Style {
	if m.Reveal {
		switch {
		case i == m.CorrectIndex:
			return theme.Correct
		case i == m.Chosen:
			return theme.Incorrect
		default:
			return theme.Muted
		}
	}
	switch {
	case i == m.Cursor:
		return theme.Cursor
	case i == m.Chosen:
		return theme.Chosen
	default:
		return theme.Body
	}
}
