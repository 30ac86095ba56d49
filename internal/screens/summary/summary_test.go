package summary

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizrush/internal/gems"
	"github.com/abhisek/quizrush/internal/screens/play"
	"github.com/abhisek/quizrush/internal/session"
)

func testOutcome() play.Outcome {
	return play.Outcome{
		SessionID: "s1",
		Status:    session.StatusCompleted,
		Score:     1230,
		BestScore: 1500,
		Result: &session.GameResult{
			FinalScore:        1230,
			Accuracy:          75,
			MaxStreak:         5,
			TotalTimeMs:       95_000,
			MasteryPercentage: 50,
			Answered:          8,
			Correct:           6,
			Outcome:           session.OutcomeCleared,
			WeakItems: []session.WeakGameItem{
				{QuestionID: "q2", IncorrectCount: 2, LastIncorrectIndex: 6, Attempts: 3},
			},
		},
		Gems: []gems.GemAward{
			{Type: gems.GemStreak, Rarity: gems.RarityCommon, Reason: "5 correct in a row!"},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testOutcome(), nil)
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testOutcome(), map[string]string{"q2": "Capital of Peru?"})
	view := s.View(100, 30)
	for _, want := range []string{"Session complete!", "Score: 1230", "Best: 1500", "Capital of Peru?", "5 correct in a row!"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_NewBest(t *testing.T) {
	o := testOutcome()
	o.BestScore = 1230
	view := New(o, nil).View(100, 30)
	if !strings.Contains(view, "New best!") {
		t.Error("expected new best banner")
	}
}

func TestSummaryScreen_Loss(t *testing.T) {
	o := testOutcome()
	o.Result.Outcome = session.OutcomeLoss
	if view := New(o, nil).View(100, 30); !strings.Contains(view, "Out of lives!") {
		t.Error("expected loss headline")
	}
}

func TestSummaryScreen_Abandoned(t *testing.T) {
	o := play.Outcome{Status: session.StatusAbandoned, Score: 300, Errs: []error{errors.New("disk full")}}
	view := New(o, nil).View(100, 30)
	for _, want := range []string{"Session abandoned", "Score: 300", "disk full"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testOutcome(), nil)
		_, cmd := s.Update(tea.KeyPressMsg{Code: code})
		if cmd == nil {
			t.Errorf("expected a quit command for key %q", code)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testOutcome(), nil)
	if hints := s.KeyHints(); len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 5); got != "abcd…" {
		t.Errorf("truncate = %q, want %q", got, "abcd…")
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate = %q, want %q", got, "abc")
	}
}
