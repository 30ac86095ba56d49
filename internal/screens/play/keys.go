package play

import (
	"strconv"

	"charm.land/bubbles/v2/key"

	"github.com/abhisek/quizrush/internal/powerup"
)

// maxOptionKeys is how many options can be picked by number.
const maxOptionKeys = 9

// KeyMap defines the key bindings of the play screen.
type KeyMap struct {
	Options []key.Binding // 1-9, by visible position
	Up      key.Binding
	Down    key.Binding
	Submit  key.Binding

	FiftyFifty   key.Binding
	FreezeTimer  key.Binding
	StreakShield key.Binding
	Skip         key.Binding

	Pause   key.Binding
	Abandon key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = newKeyMap()

func newKeyMap() KeyMap {
	km := KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "answer"),
		),
		FiftyFifty: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("F", "50/50"),
		),
		FreezeTimer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("T", "freeze"),
		),
		StreakShield: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("S", "shield"),
		),
		Skip: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("N", "skip"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "space"),
			key.WithHelp("P", "pause"),
		),
		Abandon: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("Esc", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("Y", "end session"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("N", "keep going"),
		),
	}
	for i := 1; i <= maxOptionKeys; i++ {
		k := strconv.Itoa(i)
		km.Options = append(km.Options, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, "pick"),
		))
	}
	return km
}

// PowerUpBinding returns the binding that activates t.
func (km KeyMap) PowerUpBinding(t powerup.Type) key.Binding {
	switch t {
	case powerup.FiftyFifty:
		return km.FiftyFifty
	case powerup.FreezeTimer:
		return km.FreezeTimer
	case powerup.StreakShield:
		return km.StreakShield
	default:
		return km.Skip
	}
}
