package session

import (
	"testing"

	"github.com/abhisek/quizrush/internal/powerup"
	"github.com/abhisek/quizrush/internal/scoring"
	"github.com/abhisek/quizrush/internal/spacedrep"
)

func TestScenario_AllCorrectFlatScoring(t *testing.T) {
	m := mustStart(t, plainConfig(3))
	for i := 0; i < 3; i++ {
		mustAnswer(t, m, "a", 1234)
	}

	res, ok := m.Result()
	if !ok {
		t.Fatal("expected a result")
	}
	if res.FinalScore != 3*scoring.BasePoints {
		t.Errorf("FinalScore = %d, want %d", res.FinalScore, 3*scoring.BasePoints)
	}
	if res.Accuracy != 100 {
		t.Errorf("Accuracy = %v, want 100", res.Accuracy)
	}
	if res.Outcome != OutcomeCleared {
		t.Errorf("Outcome = %s, want cleared", res.Outcome)
	}
}

func TestScenario_LapseThenMastery(t *testing.T) {
	cfg := plainConfig(1)
	cfg.SRSEnabled = true
	// A lapse resets the consecutive-correct count, so one retry masters
	// the item only with a threshold of 1.
	cfg.MasteryThreshold = 1
	m := mustStart(t, cfg)

	mustAnswer(t, m, "c", 0)
	if m.Status() != StatusInProgress {
		t.Fatalf("Status = %s, want IN_PROGRESS after the lapse", m.Status())
	}
	if v, _ := m.CurrentQuestion(); v.QuestionID != "q1" {
		t.Fatalf("current = %s, want q1 again", v.QuestionID)
	}
	mustAnswer(t, m, "a", 0)

	res, ok := m.Result()
	if !ok {
		t.Fatal("expected a result")
	}
	if len(res.Answers) != 2 {
		t.Errorf("answers = %d, want 2", len(res.Answers))
	}
	if res.MasteryPercentage != 100 {
		t.Errorf("MasteryPercentage = %v, want 100", res.MasteryPercentage)
	}
	if len(res.WeakItems) != 1 || res.WeakItems[0].QuestionID != "q1" || res.WeakItems[0].IncorrectCount != 1 {
		t.Errorf("WeakItems = %+v, want q1 with one miss", res.WeakItems)
	}
}

func TestScenario_SingleLifeLoss(t *testing.T) {
	cfg := plainConfig(3)
	cfg.SRSEnabled = true
	cfg.LivesEnabled = true
	cfg.MaxLives = 1
	m := mustStart(t, cfg)

	mustAnswer(t, m, "d", 0)

	if m.Status() != StatusCompleted {
		t.Fatalf("Status = %s, want COMPLETED", m.Status())
	}
	if got := len(m.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
	snap := m.Snapshot()
	if snap.CurrentIndex != 0 || snap.Remaining != 3 {
		t.Errorf("index/remaining = %d/%d, want 0/3 (no queue advancement)", snap.CurrentIndex, snap.Remaining)
	}
	res, _ := m.Result()
	if res.Outcome != OutcomeLoss {
		t.Errorf("Outcome = %s, want loss", res.Outcome)
	}
}

func TestScenario_FiftyFiftyTwice(t *testing.T) {
	cfg := plainConfig(2)
	cfg.PowerUpsEnabled = true
	m := mustStart(t, cfg)

	ok, err := m.ActivatePowerUp(powerup.FiftyFifty)
	if err != nil || !ok {
		t.Fatalf("first activation = %v, %v", ok, err)
	}
	ok, err = m.ActivatePowerUp(powerup.FiftyFifty)
	if err != nil || ok {
		t.Errorf("second activation = %v, %v; want false, nil", ok, err)
	}

	var uses int
	for _, p := range m.Snapshot().PowerUps {
		if p.Type == powerup.FiftyFifty {
			uses = p.UsesRemaining
		}
	}
	if want := powerup.InitialPowerUps()[powerup.FiftyFifty] - 1; uses != want {
		t.Errorf("UsesRemaining = %d, want %d", uses, want)
	}
	v, _ := m.CurrentQuestion()
	if v.HiddenCount != FiftyFiftyHides || len(v.Options) != 2 {
		t.Errorf("view = %+v, want two options left", v)
	}
}

func TestScenario_LapseWithDefaultThreshold(t *testing.T) {
	cfg := plainConfig(1)
	cfg.SRSEnabled = true
	cfg.MasteryThreshold = spacedrep.DefaultMasteryThreshold
	m := mustStart(t, cfg)

	mustAnswer(t, m, "c", 0)
	mustAnswer(t, m, "a", 0)
	if m.Status() != StatusInProgress {
		t.Fatalf("Status = %s, want IN_PROGRESS after one correct retry", m.Status())
	}
	mustAnswer(t, m, "a", 0)

	res, ok := m.Result()
	if !ok {
		t.Fatal("expected a result")
	}
	if len(res.Answers) != 3 {
		t.Errorf("answers = %d, want 3", len(res.Answers))
	}
	if res.MasteryPercentage != 100 {
		t.Errorf("MasteryPercentage = %v, want 100", res.MasteryPercentage)
	}
}
