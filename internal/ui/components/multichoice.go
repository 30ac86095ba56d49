package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/ui/theme"
)

// MultiChoice is a numbered option selector. Options are addressed by id so
// that hidden options do not shift the correct answer.
type MultiChoice struct {
	Options  []content.Option
	Selected int

	// Set by Reveal once the answer is known.
	Revealed  bool
	ChosenID  string
	CorrectID string
}

// NewMultiChoice creates a selector over the visible options.
func NewMultiChoice(options []content.Option) MultiChoice {
	return MultiChoice{Options: options}
}

// Update handles arrow navigation. Selection by number is the caller's job.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch kmsg.String() {
	case "up":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}
	return m, nil
}

// At returns the option shown at 0-based position i.
func (m MultiChoice) At(i int) (content.Option, bool) {
	if i < 0 || i >= len(m.Options) {
		return content.Option{}, false
	}
	return m.Options[i], true
}

// Current returns the highlighted option.
func (m MultiChoice) Current() (content.Option, bool) {
	return m.At(m.Selected)
}

// Reveal marks the chosen and correct options for feedback rendering.
func (m MultiChoice) Reveal(chosenID, correctID string) MultiChoice {
	m.Revealed = true
	m.ChosenID = chosenID
	m.CorrectID = correctID
	return m
}

// View renders the options, one per line.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt.Text)

		var style lipgloss.Style
		switch {
		case m.Revealed && opt.ID == m.CorrectID:
			style = theme.Correct
		case m.Revealed && opt.ID == m.ChosenID:
			style = theme.Incorrect
		case m.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.OptionKey
		default:
			style = theme.Option
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
