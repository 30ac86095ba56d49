// Package session implements the game session engine: a single-threaded
// state machine that serves questions from a spaced-repetition queue,
// scores answers, applies power-ups and aggregates the final result.
//
// The machine performs no I/O. Callers deliver one event at a time.
package session

import (
	"math/rand/v2"

	"github.com/abhisek/quizrush/internal/content"
	"github.com/abhisek/quizrush/internal/powerup"
	"github.com/abhisek/quizrush/internal/scoring"
	"github.com/abhisek/quizrush/internal/spacedrep"
)

// FiftyFiftyHides is how many distractors FIFTY_FIFTY removes.
const FiftyFiftyHides = 2

// Machine drives one session. The zero value is not usable; call New.
type Machine struct {
	cfg       Config
	params    scoring.Params
	questions map[string]*content.Question
	state     PlayerGameState

	// Per-question context, reset whenever the head of the queue changes.
	questionElapsedMs int64
	hidden            map[string]bool
	usedThisQuestion  []powerup.Type

	skipped   int
	result    *GameResult
	events    []Event
	observers []func(ProgressIndicator)
}

// New returns a machine in NOT_STARTED.
func New() *Machine {
	return &Machine{state: PlayerGameState{Status: StatusNotStarted}}
}

// Status returns the current lifecycle state.
func (m *Machine) Status() Status {
	return m.state.Status
}

// Config returns the config the session was started with.
func (m *Machine) Config() Config {
	return m.cfg
}

// Start validates cfg and begins the session.
func (m *Machine) Start(cfg Config) error {
	if m.state.Status != StatusNotStarted {
		return &InvalidTransitionError{Op: "start", From: m.state.Status}
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	questions := make([]content.Question, len(cfg.Questions))
	copy(questions, cfg.Questions)
	cfg.Questions = questions

	ids := make([]string, len(questions))
	m.questions = make(map[string]*content.Question, len(questions))
	for i := range questions {
		ids[i] = questions[i].ID
		m.questions[questions[i].ID] = &questions[i]
	}

	m.params = cfg.Scoring
	if m.params.IsZero() {
		m.params = scoring.DefaultParams()
	}

	inventory := map[powerup.Type]int(nil)
	if cfg.PowerUpsEnabled {
		inventory = cfg.InitialPowerUps
		if inventory == nil {
			inventory = powerup.InitialPowerUps()
		}
	}

	lives := 0
	if cfg.LivesEnabled {
		lives = cfg.MaxLives
	}

	m.cfg = cfg
	m.state = PlayerGameState{
		Status: StatusInProgress,
		Lives:  lives,
		Queue: spacedrep.NewQueue(ids, spacedrep.Options{
			Enabled:          cfg.SRSEnabled,
			MasteryThreshold: cfg.MasteryThreshold,
			MaxRequeues:      cfg.MaxRequeues,
		}),
		PowerUps: powerup.NewManager(inventory),
	}
	m.resetQuestion()
	m.notify()
	return nil
}

// SubmitAnswer answers the current question. An empty optionID is a
// timeout and always incorrect. A negative elapsedMs uses the machine's own
// question timer, which only advances through Tick.
func (m *Machine) SubmitAnswer(optionID string, elapsedMs int64) (GameAnswer, error) {
	switch m.state.Status {
	case StatusInProgress:
	case StatusPaused:
		return GameAnswer{}, &InvalidTransitionError{Op: "submit answer", From: m.state.Status}
	default:
		return GameAnswer{}, &NoActiveQuestionError{Status: m.state.Status}
	}
	qid, ok := m.state.Queue.Current()
	if !ok {
		return GameAnswer{}, &NoActiveQuestionError{Status: m.state.Status}
	}
	q := m.questions[qid]
	if optionID != "" && !q.HasOption(optionID) {
		return GameAnswer{}, &UnknownOptionError{QuestionID: qid, OptionID: optionID}
	}
	if elapsedMs < 0 {
		elapsedMs = m.questionElapsedMs
	}

	correct := q.IsCorrect(optionID)
	mods := m.state.PowerUps.Modifiers()
	scored := m.params.Score(scoring.Input{
		Correct:             correct,
		ElapsedMs:           elapsedMs,
		Streak:              m.state.Streak,
		SpeedScoringEnabled: m.cfg.SpeedScoringEnabled,
		FreezeActive:        mods.FreezeTimer,
	})

	used := append([]powerup.Type(nil), m.usedThisQuestion...)
	shielded := false
	if correct {
		m.state.Streak++
		if m.state.Streak > m.state.MaxStreak {
			m.state.MaxStreak = m.state.Streak
		}
	} else {
		if m.state.PowerUps.ConsumeShield() {
			shielded = true
			if !containsType(used, powerup.StreakShield) {
				used = append(used, powerup.StreakShield)
			}
		} else {
			m.state.Streak = 0
		}
		if m.cfg.LivesEnabled && m.state.Lives > 0 {
			m.state.Lives--
		}
	}
	m.state.Score += scored.Delta

	answer := GameAnswer{
		QuestionID:       qid,
		SelectedOptionID: optionID,
		Correct:          correct,
		ElapsedMs:        elapsedMs,
		ScoreDelta:       scored.Delta,
		PowerUpsUsed:     used,
		QuestionIndex:    m.state.CurrentQuestionIndex,
		Shielded:         shielded,
	}
	m.state.History = append(m.state.History, answer)
	m.record(Event{Kind: EventAnswer, OptionID: optionID, ElapsedMs: elapsedMs})

	if m.cfg.LivesEnabled && m.state.Lives == 0 {
		m.complete(OutcomeLoss)
		m.notify()
		return answer, nil
	}

	m.state.Queue.Record(correct)
	m.state.PowerUps.ResolveQuestion()
	m.advance()
	if m.state.Queue.Remaining() == 0 {
		m.complete(OutcomeCleared)
	}
	m.notify()
	return answer, nil
}

// ActivatePowerUp arms t for the current question. It returns false without
// error when the power-up is missing, exhausted, cooling down, already
// active or has nothing to act on.
func (m *Machine) ActivatePowerUp(t powerup.Type) (bool, error) {
	if m.state.Status != StatusInProgress {
		return false, &InvalidTransitionError{Op: "activate power-up", From: m.state.Status}
	}
	qid, ok := m.state.Queue.Current()
	if !ok {
		return false, &NoActiveQuestionError{Status: m.state.Status}
	}
	idx := m.state.CurrentQuestionIndex

	var toHide []string
	if t == powerup.FiftyFifty {
		toHide = m.pickHidden(m.questions[qid], idx)
		if len(toHide) == 0 {
			return false, nil
		}
	}
	if !m.state.PowerUps.Activate(t, idx) {
		return false, nil
	}

	switch t {
	case powerup.FiftyFifty:
		for _, id := range toHide {
			m.hidden[id] = true
		}
		m.usedThisQuestion = append(m.usedThisQuestion, t)
	case powerup.FreezeTimer, powerup.StreakShield:
		m.usedThisQuestion = append(m.usedThisQuestion, t)
	case powerup.Skip:
		m.state.Queue.Skip()
		m.skipped++
		m.state.PowerUps.ResolveQuestion()
		m.advance()
	}

	m.record(Event{Kind: EventPowerUp, PowerUp: t})
	m.notify()
	return true, nil
}

// Pause suspends the session clock and the question timer.
func (m *Machine) Pause() error {
	if m.state.Status != StatusInProgress {
		return &InvalidTransitionError{Op: "pause", From: m.state.Status}
	}
	m.state.Status = StatusPaused
	m.record(Event{Kind: EventPause})
	m.notify()
	return nil
}

// Resume continues a paused session.
func (m *Machine) Resume() error {
	if m.state.Status != StatusPaused {
		return &InvalidTransitionError{Op: "resume", From: m.state.Status}
	}
	m.state.Status = StatusInProgress
	m.record(Event{Kind: EventResume})
	m.notify()
	return nil
}

// Abandon ends the session without a result.
func (m *Machine) Abandon() error {
	if m.state.Status != StatusInProgress && m.state.Status != StatusPaused {
		return &InvalidTransitionError{Op: "abandon", From: m.state.Status}
	}
	m.state.Status = StatusAbandoned
	m.state.PowerUps.DeactivateAll()
	m.record(Event{Kind: EventAbandon})
	m.notify()
	return nil
}

// Tick advances the session clock by deltaMs. It is a no-op unless the
// session is in progress. While FREEZE_TIMER is active only the session
// clock moves.
func (m *Machine) Tick(deltaMs int64) {
	if m.state.Status != StatusInProgress || deltaMs <= 0 {
		return
	}
	m.state.ElapsedSessionMs += deltaMs
	if !m.state.PowerUps.IsActive(powerup.FreezeTimer) {
		m.questionElapsedMs += deltaMs
	}
	if n := len(m.events); n > 0 && m.events[n-1].Kind == EventTick {
		m.events[n-1].DeltaMs += deltaMs
		return
	}
	m.events = append(m.events, Event{Kind: EventTick, DeltaMs: deltaMs})
}

// Snapshot returns a read-only projection of the current state.
func (m *Machine) Snapshot() ProgressIndicator {
	p := ProgressIndicator{
		CurrentIndex:      m.state.CurrentQuestionIndex,
		Score:             m.state.Score,
		Streak:            m.state.Streak,
		Lives:             m.state.Lives,
		Status:            m.state.Status,
		QuestionElapsedMs: m.questionElapsedMs,
		ElapsedSessionMs:  m.state.ElapsedSessionMs,
	}
	if m.state.Queue != nil {
		p.Total = m.state.Queue.Len()
		p.Remaining = m.state.Queue.Remaining()
	}
	if m.state.PowerUps != nil {
		p.ActivePowerUps = m.state.PowerUps.Active()
		p.PowerUps = m.state.PowerUps.Inventory()
	}
	return p
}

// CurrentQuestion returns the question being served, minus hidden options.
func (m *Machine) CurrentQuestion() (QuestionView, bool) {
	if m.state.Status != StatusInProgress && m.state.Status != StatusPaused {
		return QuestionView{}, false
	}
	qid, ok := m.state.Queue.Current()
	if !ok {
		return QuestionView{}, false
	}
	q := m.questions[qid]
	v := QuestionView{
		Index:      m.state.CurrentQuestionIndex,
		QuestionID: q.ID,
		Content:    q.Content,
		Tags:       q.Tags,
		Options:    make([]content.Option, 0, len(q.Options)),
	}
	for _, o := range q.Options {
		if m.hidden[o.ID] {
			v.HiddenCount++
			continue
		}
		v.Options = append(v.Options, o)
	}
	return v, true
}

// Question looks up a question of the session by id.
func (m *Machine) Question(id string) (content.Question, bool) {
	q, ok := m.questions[id]
	if !ok {
		return content.Question{}, false
	}
	return *q, true
}

// Result returns the GameResult once the session has completed.
func (m *Machine) Result() (GameResult, bool) {
	if m.result == nil {
		return GameResult{}, false
	}
	return *m.result, true
}

// History returns a copy of the answer history.
func (m *Machine) History() []GameAnswer {
	out := make([]GameAnswer, len(m.state.History))
	copy(out, m.state.History)
	return out
}

// Events returns a copy of the accepted events since Start.
func (m *Machine) Events() []Event {
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Observe registers fn to be called with a fresh snapshot after every
// state-changing operation other than Tick.
func (m *Machine) Observe(fn func(ProgressIndicator)) {
	m.observers = append(m.observers, fn)
}

func (m *Machine) notify() {
	if len(m.observers) == 0 {
		return
	}
	snap := m.Snapshot()
	for _, fn := range m.observers {
		fn(snap)
	}
}

func (m *Machine) record(e Event) {
	m.events = append(m.events, e)
}

// advance moves to the new head of the queue.
func (m *Machine) advance() {
	m.state.CurrentQuestionIndex = m.state.Queue.Position()
	m.resetQuestion()
}

func (m *Machine) resetQuestion() {
	m.questionElapsedMs = 0
	m.hidden = make(map[string]bool)
	m.usedThisQuestion = nil
}

func (m *Machine) complete(outcome Outcome) {
	m.state.Status = StatusCompleted
	m.state.PowerUps.DeactivateAll()
	res := BuildResult(m.state.History, ResultStats{
		MaxStreak:       m.state.MaxStreak,
		TotalTimeMs:     m.state.ElapsedSessionMs,
		MasteredCount:   m.state.Queue.MasteredCount(),
		UniqueQuestions: len(m.questions),
		Outcome:         outcome,
		Skipped:         m.skipped,
	})
	m.result = &res
}

// pickHidden chooses which distractors FIFTY_FIFTY removes. The choice is a
// function of the session seed and the question index only.
func (m *Machine) pickHidden(q *content.Question, idx int) []string {
	var candidates []string
	for _, id := range q.IncorrectOptionIDs() {
		if !m.hidden[id] {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	n := FiftyFiftyHides
	if n > len(candidates) {
		n = len(candidates)
	}
	r := rand.New(rand.NewPCG(m.cfg.Seed, uint64(idx)))
	perm := r.Perm(len(candidates))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = candidates[perm[i]]
	}
	return out
}

func containsType(ts []powerup.Type, t powerup.Type) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}
