package powerup

import "fmt"

// Type identifies a power-up variant.
type Type string

const (
	FiftyFifty   Type = "FIFTY_FIFTY"
	FreezeTimer  Type = "FREEZE_TIMER"
	StreakShield Type = "STREAK_SHIELD"
	Skip         Type = "SKIP"
)

// AllTypes returns every power-up type in display order.
func AllTypes() []Type {
	return []Type{FiftyFifty, FreezeTimer, StreakShield, Skip}
}

// ParseType maps a name such as "FIFTY_FIFTY" to its Type.
func ParseType(s string) (Type, error) {
	for _, t := range AllTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown power-up %q", s)
}

// Valid reports whether t is one of the known variants.
func (t Type) Valid() bool {
	switch t {
	case FiftyFifty, FreezeTimer, StreakShield, Skip:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable label for the power-up.
func (t Type) DisplayName() string {
	switch t {
	case FiftyFifty:
		return "50/50"
	case FreezeTimer:
		return "Freeze"
	case StreakShield:
		return "Shield"
	case Skip:
		return "Skip"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the power-up.
func (t Type) Icon() string {
	switch t {
	case FiftyFifty:
		return "½"
	case FreezeTimer:
		return "❄"
	case StreakShield:
		return "🛡️"
	case Skip:
		return "⏭"
	default:
		return "✦"
	}
}

// Cooldown lengths, in questions, after a successful activation.
const (
	FiftyFiftyCooldown   = 3
	FreezeTimerCooldown  = 3
	StreakShieldCooldown = 5
	SkipCooldown         = 2
)

// Cooldown returns how many questions must pass after activating t before
// it can be activated again.
func (t Type) Cooldown() int {
	switch t {
	case FiftyFifty:
		return FiftyFiftyCooldown
	case FreezeTimer:
		return FreezeTimerCooldown
	case StreakShield:
		return StreakShieldCooldown
	case Skip:
		return SkipCooldown
	default:
		return 0
	}
}

// PersistsAcrossQuestions reports whether an active power-up stays armed
// after the question it was activated on is resolved.
func (t Type) PersistsAcrossQuestions() bool {
	switch t {
	case StreakShield:
		return true
	case FiftyFifty, FreezeTimer, Skip:
		return false
	default:
		return false
	}
}

// InitialPowerUps is the default inventory a session starts with.
func InitialPowerUps() map[Type]int {
	return map[Type]int{
		FiftyFifty:   2,
		FreezeTimer:  2,
		StreakShield: 1,
		Skip:         1,
	}
}
