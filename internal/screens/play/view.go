package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizrush/internal/powerup"
	"github.com/abhisek/quizrush/internal/session"
	"github.com/abhisek/quizrush/internal/ui/components"
	"github.com/abhisek/quizrush/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	switch {
	case s.finishing:
		return centered(width, theme.Subtitle.Render("\n\nSaving results..."))
	case s.confirmQuit:
		return renderQuitConfirm(width)
	case s.machine.Status() == session.StatusPaused:
		return s.renderPaused(width)
	}
	return s.renderQuestion(width)
}

func (s *PlayScreen) renderQuestion(width int) string {
	p := s.machine.Snapshot()
	v, ok := s.machine.CurrentQuestion()
	if !ok {
		return ""
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d", v.Index+1))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d left   %s  ", p.Remaining, clock(p.ElapsedSessionMs)))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	if bar := s.renderTimer(p, width-4); bar != "" {
		b.WriteString("  " + bar + "\n")
	} else {
		b.WriteString("  " + theme.Divider.Render(strings.Repeat("─", max(width-4, 0))) + "\n")
	}
	b.WriteString("\n")

	if fb := s.renderFeedback(); fb != "" {
		b.WriteString(centered(width, fb))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(v.Content))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	if v.HiddenCount > 0 {
		b.WriteString(centered(width, theme.Hint.Render(fmt.Sprintf("%d options removed", v.HiddenCount))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.machine.Config().PowerUpsEnabled {
		b.WriteString(centered(width, s.renderPowerUps(p)))
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Warning).Render(s.notice)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTimer draws the per-question countdown, or nothing when there is
// no timeout.
func (s *PlayScreen) renderTimer(p session.ProgressIndicator, width int) string {
	limit := s.opts.QuestionTimeout.Milliseconds()
	if limit <= 0 {
		return ""
	}
	left := limit - p.QuestionElapsedMs
	if left < 0 {
		left = 0
	}
	frac := float64(left) / float64(limit)

	bar := components.NewProgressBar("", frac, width).
		WithSuffix("%2ds", (left+999)/1000)
	switch {
	case containsType(p.ActivePowerUps, powerup.FreezeTimer):
		bar = bar.WithFill(theme.TimerFrozen)
	case frac < 0.25:
		bar = bar.WithFill(theme.TimerLow)
	}
	return bar.View()
}

func (s *PlayScreen) renderFeedback() string {
	if s.last == nil {
		return ""
	}
	a := s.last.answer
	switch {
	case a.Correct:
		return theme.Correct.Render(fmt.Sprintf("Correct! +%d", a.ScoreDelta))
	case a.Shielded:
		return theme.Incorrect.Render(fmt.Sprintf("Missed. Streak shielded. Answer: %s", s.last.correct.Text))
	case a.TimedOut():
		return theme.Incorrect.Render(fmt.Sprintf("Time's up! Answer: %s", s.last.correct.Text))
	default:
		return theme.Incorrect.Render(fmt.Sprintf("Missed. Answer: %s", s.last.correct.Text))
	}
}

func (s *PlayScreen) renderPowerUps(p session.ProgressIndicator) string {
	if len(p.PowerUps) == 0 {
		return theme.Hint.Render("No power-ups")
	}
	parts := make([]string, 0, len(p.PowerUps))
	for _, pu := range p.PowerUps {
		label := fmt.Sprintf("[%s] %s %s x%d",
			s.keys.PowerUpBinding(pu.Type).Help().Key,
			pu.Type.Icon(), pu.Type.DisplayName(), pu.UsesRemaining)
		var style lipgloss.Style
		switch {
		case pu.Active:
			style = theme.PowerUpActive
		case pu.Exhausted():
			style = theme.PowerUpSpent
		case p.CurrentIndex < pu.CooldownUntilIndex:
			style = theme.PowerUpCooling
			label += fmt.Sprintf(" (%d)", pu.CooldownUntilIndex-p.CurrentIndex)
		default:
			style = theme.PowerUpReady
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, "  ")
}

func (s *PlayScreen) renderPaused(width int) string {
	p := s.machine.Snapshot()
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Paused"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Question %d   %d left   %s", p.CurrentIndex+1, p.Remaining, clock(p.ElapsedSessionMs))))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("Press P to resume"))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("End this session?"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Your score is recorded as abandoned."))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Y")+
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" end   ")+
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("N")+
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" keep going")))
	return b.String()
}

func centered(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// clock formats milliseconds as m:ss.
func clock(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func containsType(ts []powerup.Type, t powerup.Type) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}
