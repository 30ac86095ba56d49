package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizrush/internal/gems"
	"github.com/abhisek/quizrush/internal/screen"
	"github.com/abhisek/quizrush/internal/screens/play"
	"github.com/abhisek/quizrush/internal/session"
	"github.com/abhisek/quizrush/internal/ui/layout"
	"github.com/abhisek/quizrush/internal/ui/theme"
)

// maxWeakItems caps the weak-item list.
const maxWeakItems = 5

// SummaryScreen displays the end-of-session summary.
type SummaryScreen struct {
	outcome   play.Outcome
	questions map[string]string // question id → content
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a summary for outcome. questions maps ids to their text so
// weak items can be shown by content.
func New(outcome play.Outcome, questions map[string]string) *SummaryScreen {
	return &SummaryScreen{outcome: outcome, questions: questions}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SummaryScreen) HeaderStatus() layout.HeaderStatus {
	st := layout.HeaderStatus{Visible: true, Score: s.outcome.Score}
	if r := s.outcome.Result; r != nil {
		st.Streak = r.MaxStreak
	}
	return st
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(s.headline()))
	b.WriteString("\n\n")

	res := s.outcome.Result
	if res == nil {
		b.WriteString(line(width, theme.Body, fmt.Sprintf("Score: %d", s.outcome.Score)))
		b.WriteString(line(width, theme.Subtitle, "Abandoned sessions earn no gems."))
		b.WriteString(s.renderErrors(width))
		return b.String()
	}

	b.WriteString(line(width, theme.Score, fmt.Sprintf("Score: %d", res.FinalScore)))
	if s.outcome.BestScore > 0 {
		best := fmt.Sprintf("Best: %d", s.outcome.BestScore)
		if res.FinalScore >= s.outcome.BestScore {
			best = "New best!"
		}
		b.WriteString(line(width, theme.Subtitle, best))
	}
	b.WriteString("\n")

	secs := res.TotalTimeMs / 1000
	b.WriteString(line(width, theme.Body, fmt.Sprintf(
		"Answered: %d   Correct: %d   Accuracy: %.1f%%", res.Answered, res.Correct, res.Accuracy)))
	b.WriteString(line(width, theme.Body, fmt.Sprintf(
		"Best streak: %d   Mastered: %.1f%%   Skipped: %d   Time: %d:%02d",
		res.MaxStreak, res.MasteryPercentage, res.Skipped, secs/60, secs%60)))

	if len(res.WeakItems) > 0 {
		b.WriteString(section(width, "Needs practice"))
		for i, w := range res.WeakItems {
			if i == maxWeakItems {
				b.WriteString(line(width, theme.Hint, fmt.Sprintf("and %d more", len(res.WeakItems)-maxWeakItems)))
				break
			}
			text := s.questions[w.QuestionID]
			if text == "" {
				text = w.QuestionID
			}
			b.WriteString(line(width, lipgloss.NewStyle().Foreground(theme.Warning),
				fmt.Sprintf("%s  (missed %d of %d)", truncate(text, width-20), w.IncorrectCount, w.Attempts)))
		}
	}

	if len(s.outcome.Gems) > 0 {
		b.WriteString(section(width, "Gems"))
		for _, gem := range s.outcome.Gems {
			text := fmt.Sprintf("%s %s %s Gem: %s",
				gem.Type.Icon(), gem.Rarity.DisplayName(), gem.Type.DisplayName(), gem.Reason)
			b.WriteString(line(width, lipgloss.NewStyle().Foreground(rarityColor(gem.Rarity)), text))
		}
	}

	if s.outcome.Recorded != "" {
		b.WriteString("\n")
		b.WriteString(line(width, theme.Hint, "Replay saved to "+s.outcome.Recorded))
	}
	b.WriteString(s.renderErrors(width))
	return b.String()
}

func (s *SummaryScreen) headline() string {
	switch {
	case s.outcome.Status == session.StatusAbandoned:
		return "Session abandoned"
	case s.outcome.Result != nil && s.outcome.Result.Outcome == session.OutcomeLoss:
		return "Out of lives!"
	default:
		return "Session complete!"
	}
}

func (s *SummaryScreen) renderErrors(width int) string {
	var b strings.Builder
	for _, err := range s.outcome.Errs {
		b.WriteString(line(width, theme.Incorrect, "warning: "+err.Error()))
	}
	return b.String()
}

func line(width int, style lipgloss.Style, text string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text)) + "\n"
}

func section(width int, title string) string {
	divider := theme.Divider.Render(strings.Repeat("─", min(max(width-8, 0), 60)))
	return "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Subtitle.Render(title)) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) + "\n\n"
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// rarityColor returns the theme color for a gem rarity level.
func rarityColor(r gems.Rarity) color.Color {
	switch r {
	case gems.RarityRare:
		return theme.Secondary
	case gems.RarityEpic:
		return theme.Primary
	case gems.RarityLegendary:
		return theme.Accent
	default:
		return theme.Text
	}
}
