// Package play is the interactive session screen. It turns key presses and
// timer ticks into session events and hands the finished session to a Sink.
package play

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/powerup"
	"github.com/abhisek/quizrush/internal/screen"
	"github.com/abhisek/quizrush/internal/session"
	"github.com/abhisek/quizrush/internal/ui/components"
	"github.com/abhisek/quizrush/internal/ui/layout"
)

// Options configures a play screen.
type Options struct {
	Session   session.Config
	DeckID    string
	DeckTitle string
	SessionID string // generated when empty

	// QuestionTimeout submits a timeout once the question timer reaches it.
	// Zero disables the timeout.
	QuestionTimeout time.Duration

	Sink Sink

	// OnFinish turns the persisted outcome into the next command, usually a
	// navigation to the summary screen.
	OnFinish func(Outcome) tea.Cmd

	Now func() time.Time
}

// feedback is the outcome of the previous answer, shown above the next
// question.
type feedback struct {
	answer  session.GameAnswer
	correct content.Option
}

// PlayScreen implements screen.Screen for a running session.
type PlayScreen struct {
	opts      Options
	keys      KeyMap
	machine   *session.Machine
	sessionID string
	now       func() time.Time
	lastTick  time.Time

	choices components.MultiChoice
	viewKey string

	last             *feedback
	notice           string
	confirmQuit      bool
	pausedForConfirm bool
	finishing        bool
	outcome          *Outcome
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New starts a session and returns its screen. An invalid session config
// is returned as an error before any UI runs.
func New(opts Options) (*PlayScreen, error) {
	m := session.New()
	if err := m.Start(opts.Session); err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	id := opts.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	s := &PlayScreen{
		opts:      opts,
		keys:      DefaultKeyMap,
		machine:   m,
		sessionID: id,
		now:       now,
		lastTick:  now(),
	}
	s.syncChoices()
	return s, nil
}

// Machine exposes the underlying session machine.
func (s *PlayScreen) Machine() *session.Machine {
	return s.machine
}

// SessionID returns the id the session is recorded under.
func (s *PlayScreen) SessionID() string {
	return s.sessionID
}

func (s *PlayScreen) Init() tea.Cmd {
	s.lastTick = s.now()
	return tickCmd()
}

func (s *PlayScreen) Title() string {
	if s.opts.DeckTitle != "" {
		return s.opts.DeckTitle
	}
	return "Play"
}

func (s *PlayScreen) HeaderStatus() layout.HeaderStatus {
	p := s.machine.Snapshot()
	return layout.HeaderStatus{
		Visible:      true,
		Score:        p.Score,
		Streak:       p.Streak,
		Lives:        p.Lives,
		LivesEnabled: s.machine.Config().LivesEnabled,
	}
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.finishing:
		return nil
	case s.confirmQuit:
		return hints(s.keys.Confirm, s.keys.Cancel)
	case s.machine.Status() == session.StatusPaused:
		return []layout.KeyHint{
			{Key: "P", Description: "Resume"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	out := []layout.KeyHint{{Key: "1-9", Description: "Pick"}}
	out = append(out, hints(s.keys.Submit)...)
	if s.machine.Config().PowerUpsEnabled {
		out = append(out, hints(s.keys.FiftyFifty, s.keys.FreezeTimer, s.keys.StreakShield, s.keys.Skip)...)
	}
	return append(out, hints(s.keys.Pause, s.keys.Abandon)...)
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick(time.Time(msg))
	case finishedMsg:
		s.outcome = &msg.Outcome
		if s.opts.OnFinish != nil {
			return s, s.opts.OnFinish(msg.Outcome)
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleTick(t time.Time) (screen.Screen, tea.Cmd) {
	if s.machine.Status().Terminal() {
		return s, nil
	}
	delta := t.Sub(s.lastTick).Milliseconds()
	if delta > 0 {
		s.lastTick = s.lastTick.Add(time.Duration(delta) * time.Millisecond)
		s.machine.Tick(delta)
	}

	if s.timedOut() {
		s.submit("")
		if cmd := s.afterEvent(); cmd != nil {
			return s, cmd
		}
	}
	return s, tickCmd()
}

func (s *PlayScreen) timedOut() bool {
	if s.opts.QuestionTimeout <= 0 || s.machine.Status() != session.StatusInProgress {
		return false
	}
	return s.machine.Snapshot().QuestionElapsedMs >= s.opts.QuestionTimeout.Milliseconds()
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.finishing {
		return s, nil
	}

	if s.confirmQuit {
		switch {
		case key.Matches(msg, s.keys.Confirm):
			s.confirmQuit = false
			if err := s.machine.Abandon(); err != nil {
				s.notice = err.Error()
				return s, nil
			}
			return s, s.afterEvent()
		case key.Matches(msg, s.keys.Cancel):
			s.confirmQuit = false
			if s.pausedForConfirm {
				s.pausedForConfirm = false
				s.resume()
			}
		}
		return s, nil
	}

	if key.Matches(msg, s.keys.Abandon) {
		s.confirmQuit = true
		if s.machine.Status() == session.StatusInProgress {
			if err := s.machine.Pause(); err == nil {
				s.pausedForConfirm = true
			}
		}
		return s, nil
	}

	if s.machine.Status() == session.StatusPaused {
		if key.Matches(msg, s.keys.Pause) {
			s.resume()
		}
		return s, nil
	}
	if s.machine.Status() != session.StatusInProgress {
		return s, nil
	}

	s.notice = ""
	switch {
	case key.Matches(msg, s.keys.Pause):
		if err := s.machine.Pause(); err != nil {
			s.notice = err.Error()
		}
		return s, nil
	case key.Matches(msg, s.keys.Submit):
		if opt, ok := s.choices.Current(); ok {
			s.submit(opt.ID)
		}
		return s, s.afterEvent()
	case key.Matches(msg, s.keys.Up, s.keys.Down):
		s.choices, _ = s.choices.Update(msg)
		return s, nil
	}

	for i, b := range s.keys.Options {
		if key.Matches(msg, b) {
			if opt, ok := s.choices.At(i); ok {
				s.submit(opt.ID)
			}
			return s, s.afterEvent()
		}
	}

	for _, t := range powerup.AllTypes() {
		if key.Matches(msg, s.keys.PowerUpBinding(t)) {
			s.activate(t)
			return s, s.afterEvent()
		}
	}
	return s, nil
}

// resume restarts the session clock without counting the paused time.
func (s *PlayScreen) resume() {
	if err := s.machine.Resume(); err != nil {
		s.notice = err.Error()
		return
	}
	s.lastTick = s.now()
}

func (s *PlayScreen) submit(optionID string) {
	v, ok := s.machine.CurrentQuestion()
	if !ok {
		return
	}
	a, err := s.machine.SubmitAnswer(optionID, -1)
	if err != nil {
		s.notice = err.Error()
		return
	}
	fb := &feedback{answer: a}
	if q, ok := s.machine.Question(v.QuestionID); ok {
		fb.correct, _ = q.CorrectOption()
	}
	s.last = fb
	s.syncChoices()
}

func (s *PlayScreen) activate(t powerup.Type) {
	ok, err := s.machine.ActivatePowerUp(t)
	switch {
	case err != nil:
		s.notice = err.Error()
	case !ok:
		s.notice = fmt.Sprintf("%s is not available right now", t.DisplayName())
	case t == powerup.Skip:
		s.last = nil
	}
	s.syncChoices()
}

// syncChoices rebuilds the option list when the served question or its
// visible options change.
func (s *PlayScreen) syncChoices() {
	v, ok := s.machine.CurrentQuestion()
	if !ok {
		return
	}
	k := fmt.Sprintf("%d/%s/%d", v.Index, v.QuestionID, v.HiddenCount)
	if k == s.viewKey {
		return
	}
	s.viewKey = k
	s.choices = components.NewMultiChoice(v.Options)
}

// afterEvent starts persistence once the session has reached a terminal
// state.
func (s *PlayScreen) afterEvent() tea.Cmd {
	if s.finishing || !s.machine.Status().Terminal() {
		return nil
	}
	s.finishing = true
	sink, id, deck, m := s.opts.Sink, s.sessionID, s.opts.DeckID, s.machine
	return func() tea.Msg {
		return finishedMsg{Outcome: sink.Finish(context.Background(), id, deck, m)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
