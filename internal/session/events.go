package session

import (
	"fmt"

	"github.com/abhisek/quizrush/internal/powerup"
)

// EventKind names a driver event.
type EventKind string

const (
	EventAnswer  EventKind = "answer"
	EventPowerUp EventKind = "power_up"
	EventPause   EventKind = "pause"
	EventResume  EventKind = "resume"
	EventTick    EventKind = "tick"
	EventAbandon EventKind = "abandon"
)

// Event is one accepted driver event. A session's events, applied in order
// to a fresh machine started with the same config, reproduce the session.
type Event struct {
	Kind      EventKind    `json:"kind" cbor:"kind"`
	OptionID  string       `json:"option_id,omitempty" cbor:"option_id,omitempty"`
	ElapsedMs int64        `json:"elapsed_ms,omitempty" cbor:"elapsed_ms,omitempty"`
	PowerUp   powerup.Type `json:"power_up,omitempty" cbor:"power_up,omitempty"`
	DeltaMs   int64        `json:"delta_ms,omitempty" cbor:"delta_ms,omitempty"`
}

// Apply feeds e into m.
func Apply(m *Machine, e Event) error {
	switch e.Kind {
	case EventAnswer:
		_, err := m.SubmitAnswer(e.OptionID, e.ElapsedMs)
		return err
	case EventPowerUp:
		ok, err := m.ActivatePowerUp(e.PowerUp)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("power-up %s was not activated", e.PowerUp)
		}
		return nil
	case EventPause:
		return m.Pause()
	case EventResume:
		return m.Resume()
	case EventTick:
		m.Tick(e.DeltaMs)
		return nil
	case EventAbandon:
		return m.Abandon()
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
}
