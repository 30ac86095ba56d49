package powerup

// PowerUp is the inventory state of one power-up type.
type PowerUp struct {
	Type               Type `json:"type" cbor:"type"`
	UsesRemaining      int  `json:"uses_remaining" cbor:"uses_remaining"`
	CooldownUntilIndex int  `json:"cooldown_until_index" cbor:"cooldown_until_index"`
	Active             bool `json:"active" cbor:"active"`
}

// Exhausted reports whether the power-up has no uses left.
func (p PowerUp) Exhausted() bool {
	return p.UsesRemaining <= 0
}

// Modifiers are the scoring effects of the power-ups currently active.
type Modifiers struct {
	FreezeTimer  bool
	StreakShield bool
}

// Manager holds a session's power-up inventory and enforces the activation
// rules. It is not safe for concurrent use.
type Manager struct {
	powerUps map[Type]*PowerUp
}

// NewManager builds an inventory from a type → uses map. Unknown types and
// non-positive counts are ignored. A nil or empty map yields an empty
// inventory.
func NewManager(initial map[Type]int) *Manager {
	m := &Manager{powerUps: make(map[Type]*PowerUp, len(initial))}
	for t, uses := range initial {
		if !t.Valid() || uses <= 0 {
			continue
		}
		m.powerUps[t] = &PowerUp{Type: t, UsesRemaining: uses}
	}
	return m
}

// CanActivate reports whether t may be activated at question index idx.
func (m *Manager) CanActivate(t Type, idx int) bool {
	p, ok := m.powerUps[t]
	if !ok {
		return false
	}
	return p.UsesRemaining > 0 && !p.Active && idx >= p.CooldownUntilIndex
}

// Activate arms t for the question at index idx. It returns false, leaving
// the inventory untouched, when the power-up is missing, exhausted, already
// active or cooling down.
func (m *Manager) Activate(t Type, idx int) bool {
	if !m.CanActivate(t, idx) {
		return false
	}
	p := m.powerUps[t]
	p.Active = true
	p.UsesRemaining--
	p.CooldownUntilIndex = idx + t.Cooldown()
	return true
}

// IsActive reports whether t is currently armed.
func (m *Manager) IsActive(t Type) bool {
	p, ok := m.powerUps[t]
	return ok && p.Active
}

// Modifiers returns the scoring effects of the active power-ups.
func (m *Manager) Modifiers() Modifiers {
	return Modifiers{
		FreezeTimer:  m.IsActive(FreezeTimer),
		StreakShield: m.IsActive(StreakShield),
	}
}

// ResolveQuestion deactivates every power-up scoped to the current question.
// An armed STREAK_SHIELD stays armed.
func (m *Manager) ResolveQuestion() {
	for _, p := range m.powerUps {
		if !p.Active {
			continue
		}
		switch p.Type {
		case FiftyFifty, FreezeTimer, Skip:
			p.Active = false
		case StreakShield:
			// Disarmed only by ConsumeShield.
		}
	}
}

// ConsumeShield disarms an armed STREAK_SHIELD. It reports whether a shield
// was armed.
func (m *Manager) ConsumeShield() bool {
	p, ok := m.powerUps[StreakShield]
	if !ok || !p.Active {
		return false
	}
	p.Active = false
	return true
}

// DeactivateAll disarms everything, including a shield. Used when the
// session ends.
func (m *Manager) DeactivateAll() {
	for _, p := range m.powerUps {
		p.Active = false
	}
}

// Active returns the armed power-up types in display order.
func (m *Manager) Active() []Type {
	var out []Type
	for _, t := range AllTypes() {
		if m.IsActive(t) {
			out = append(out, t)
		}
	}
	return out
}

// Get returns a copy of the state for t.
func (m *Manager) Get(t Type) (PowerUp, bool) {
	p, ok := m.powerUps[t]
	if !ok {
		return PowerUp{}, false
	}
	return *p, true
}

// Inventory returns copies of every power-up in display order.
func (m *Manager) Inventory() []PowerUp {
	out := make([]PowerUp, 0, len(m.powerUps))
	for _, t := range AllTypes() {
		if p, ok := m.powerUps[t]; ok {
			out = append(out, *p)
		}
	}
	return out
}
