// Package scoring converts a single answer into points. Everything here is
// a pure function of its inputs.
package scoring

import "math"

const (
	// BasePoints is awarded for every correct answer.
	BasePoints = 100

	// MaxSpeedBonus is the bonus for an instant answer.
	MaxSpeedBonus = 50

	// ResponseCeilingMs is the response time at which the speed bonus reaches zero.
	ResponseCeilingMs = 10_000

	// StreakCap is the largest streak that still raises the multiplier.
	StreakCap = 10

	// StreakBonusRate is the multiplier increment per consecutive correct answer.
	StreakBonusRate = 0.05
)

// Params holds the tunable scoring curve.
type Params struct {
	BasePoints        int     `json:"base_points"`
	MaxSpeedBonus     int     `json:"max_speed_bonus"`
	ResponseCeilingMs int64   `json:"response_ceiling_ms"`
	StreakCap         int     `json:"streak_cap"`
	StreakBonusRate   float64 `json:"streak_bonus_rate"`
}

// DefaultParams returns the reference scoring curve.
func DefaultParams() Params {
	return Params{
		BasePoints:        BasePoints,
		MaxSpeedBonus:     MaxSpeedBonus,
		ResponseCeilingMs: ResponseCeilingMs,
		StreakCap:         StreakCap,
		StreakBonusRate:   StreakBonusRate,
	}
}

// IsZero reports whether p is the zero value (meaning "use defaults").
func (p Params) IsZero() bool {
	return p == Params{}
}

// Input describes one answer event.
type Input struct {
	Correct             bool
	ElapsedMs           int64
	Streak              int // consecutive correct answers before this one
	SpeedScoringEnabled bool
	FreezeActive        bool
}

// Result breaks a score delta into its components.
type Result struct {
	Delta      int
	Base       int
	SpeedBonus int
	Multiplier float64
}

// Score scores an answer with the default curve.
func Score(in Input) Result {
	return DefaultParams().Score(in)
}

// Score scores an answer. Incorrect answers are worth 0. With speed scoring
// off every correct answer is worth BasePoints flat; with it on, the speed
// bonus (suppressed while frozen) is added and the sum is scaled by the
// streak multiplier.
func (p Params) Score(in Input) Result {
	if !in.Correct {
		return Result{Multiplier: 1}
	}
	if !in.SpeedScoringEnabled {
		return Result{Delta: p.BasePoints, Base: p.BasePoints, Multiplier: 1}
	}

	bonus := 0
	if !in.FreezeActive {
		bonus = p.SpeedBonus(in.ElapsedMs)
	}
	mult := p.StreakMultiplier(in.Streak)
	delta := int(math.Round(float64(p.BasePoints+bonus) * mult))
	if delta < 0 {
		delta = 0
	}
	return Result{
		Delta:      delta,
		Base:       p.BasePoints,
		SpeedBonus: bonus,
		Multiplier: mult,
	}
}

// SpeedBonus decays linearly from MaxSpeedBonus at 0ms to 0 at the ceiling.
func (p Params) SpeedBonus(elapsedMs int64) int {
	if p.ResponseCeilingMs <= 0 || p.MaxSpeedBonus <= 0 {
		return 0
	}
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	if elapsedMs >= p.ResponseCeilingMs {
		return 0
	}
	remaining := 1 - float64(elapsedMs)/float64(p.ResponseCeilingMs)
	return int(math.Floor(float64(p.MaxSpeedBonus) * remaining))
}

// StreakMultiplier returns 1 + min(streak, cap) * rate.
func (p Params) StreakMultiplier(streak int) float64 {
	if streak < 0 {
		streak = 0
	}
	if streak > p.StreakCap {
		streak = p.StreakCap
	}
	return 1 + float64(streak)*p.StreakBonusRate
}
