package scoring

import (
	"math"
	"testing"
)

func TestScore_IncorrectIsZero(t *testing.T) {
	inputs := []Input{
		{Correct: false},
		{Correct: false, SpeedScoringEnabled: true, ElapsedMs: 0, Streak: 10},
		{Correct: false, SpeedScoringEnabled: true, FreezeActive: true, Streak: 3},
		{Correct: false, ElapsedMs: -5},
	}
	for _, in := range inputs {
		if got := Score(in).Delta; got != 0 {
			t.Errorf("Score(%+v).Delta = %d, want 0", in, got)
		}
	}
}

func TestScore_SpeedDisabledIsFlat(t *testing.T) {
	for _, elapsed := range []int64{0, 1500, 9_999, 60_000} {
		got := Score(Input{Correct: true, ElapsedMs: elapsed, Streak: 7})
		if got.Delta != BasePoints {
			t.Errorf("elapsed %d: Delta = %d, want %d", elapsed, got.Delta, BasePoints)
		}
		if got.Multiplier != 1 {
			t.Errorf("elapsed %d: Multiplier = %v, want 1", elapsed, got.Multiplier)
		}
	}
}

func TestScore_FreezeNeutralizesTimer(t *testing.T) {
	fast := Score(Input{Correct: true, SpeedScoringEnabled: true, FreezeActive: true, ElapsedMs: 0})
	slow := Score(Input{Correct: true, SpeedScoringEnabled: true, FreezeActive: true, ElapsedMs: 50_000})
	if fast.Delta != BasePoints || slow.Delta != BasePoints {
		t.Errorf("frozen deltas = %d, %d; want %d for both", fast.Delta, slow.Delta, BasePoints)
	}
	if fast.SpeedBonus != 0 {
		t.Errorf("frozen SpeedBonus = %d, want 0", fast.SpeedBonus)
	}
}

func TestScore_SpeedBonusDecay(t *testing.T) {
	tests := []struct {
		elapsed int64
		want    int
	}{
		{0, BasePoints + MaxSpeedBonus},
		{5_000, BasePoints + MaxSpeedBonus/2},
		{ResponseCeilingMs, BasePoints},
		{ResponseCeilingMs * 3, BasePoints},
		{-100, BasePoints + MaxSpeedBonus},
	}
	for _, tt := range tests {
		got := Score(Input{Correct: true, SpeedScoringEnabled: true, ElapsedMs: tt.elapsed})
		if got.Delta != tt.want {
			t.Errorf("elapsed %d: Delta = %d, want %d", tt.elapsed, got.Delta, tt.want)
		}
	}
}

func TestScore_MonotonicInElapsed(t *testing.T) {
	for _, streak := range []int{0, 1, 4, 10, 25} {
		prev := math.MaxInt
		for elapsed := int64(0); elapsed <= 12_000; elapsed += 37 {
			got := Score(Input{Correct: true, SpeedScoringEnabled: true, Streak: streak, ElapsedMs: elapsed}).Delta
			if got > prev {
				t.Fatalf("streak %d: score rose from %d to %d at elapsed %d", streak, prev, got, elapsed)
			}
			prev = got
		}
	}
}

func TestStreakMultiplier(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		streak int
		want   float64
	}{
		{-1, 1.0},
		{0, 1.0},
		{1, 1.05},
		{4, 1.2},
		{10, 1.5},
		{30, 1.5},
	}
	for _, tt := range tests {
		got := p.StreakMultiplier(tt.streak)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("StreakMultiplier(%d) = %v, want %v", tt.streak, got, tt.want)
		}
	}
}

func TestScore_StreakAppliesWithSpeedScoring(t *testing.T) {
	got := Score(Input{Correct: true, SpeedScoringEnabled: true, ElapsedMs: ResponseCeilingMs, Streak: 10})
	if got.Delta != 150 {
		t.Errorf("Delta = %d, want 150", got.Delta)
	}
}

func TestParams_Custom(t *testing.T) {
	p := Params{BasePoints: 10, MaxSpeedBonus: 10, ResponseCeilingMs: 1000, StreakCap: 2, StreakBonusRate: 0.5}
	got := p.Score(Input{Correct: true, SpeedScoringEnabled: true, ElapsedMs: 0, Streak: 5})
	// (10 + 10) * (1 + 2*0.5)
	if got.Delta != 40 {
		t.Errorf("Delta = %d, want 40", got.Delta)
	}
	if (Params{}).IsZero() != true || p.IsZero() {
		t.Error("IsZero mismatch")
	}
}
