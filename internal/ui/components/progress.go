package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizrush/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string // rendered after the bar, e.g. "3/10" or "12s"
	Width   int
	Fill    lipgloss.Style
}

// NewProgressBar creates a progress bar with the default fill.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Width:   width,
		Fill:    theme.TimerOK,
	}
}

// WithSuffix returns a copy of p with the given suffix.
func (p ProgressBar) WithSuffix(format string, args ...any) ProgressBar {
	p.Suffix = fmt.Sprintf(format, args...)
	return p
}

// WithFill returns a copy of p with a different fill style.
func (p ProgressBar) WithFill(s lipgloss.Style) ProgressBar {
	p.Fill = s
	return p
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := ""
	if p.Suffix != "" {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + p.Suffix)
	}

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	result += p.Fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	return result + suffix
}
