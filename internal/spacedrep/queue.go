package spacedrep

// Options configures a Queue.
type Options struct {
	// Enabled turns on re-insertion. When false the queue is a plain FIFO
	// over the original order and every item is served exactly once.
	Enabled bool

	// MasteryThreshold is the consecutive-correct count that retires an item.
	MasteryThreshold int

	// MaxRequeues caps re-insertions per item.
	MaxRequeues int
}

func (o Options) withDefaults() Options {
	if o.MasteryThreshold <= 0 {
		o.MasteryThreshold = DefaultMasteryThreshold
	}
	if o.MaxRequeues <= 0 {
		o.MaxRequeues = DefaultMaxRequeues
	}
	return o
}

// Queue orders the not-yet-retired items of a session. Positions are
// measured in questions served, not time: Position is the index of the
// question at the head, and the pending item at slot i is served at
// index Position+i, which is always its DueIndex.
type Queue struct {
	opts     Options
	items    map[string]*Item
	pending  []*Item // serving order; pending[i].DueIndex == position+i
	position int
	mastered int
	retired  int
}

// NewQueue builds a queue with one item per question id, due in the
// given order.
func NewQueue(questionIDs []string, opts Options) *Queue {
	q := &Queue{
		opts:    opts.withDefaults(),
		items:   make(map[string]*Item, len(questionIDs)),
		pending: make([]*Item, 0, len(questionIDs)),
	}
	for i, id := range questionIDs {
		it := &Item{
			QuestionID:    id,
			DueIndex:      i,
			LastSeenIndex: -1,
			order:         i,
			aim:           i,
		}
		q.items[id] = it
		q.pending = append(q.pending, it)
	}
	return q
}

// Current returns the question id at the head of the queue.
func (q *Queue) Current() (string, bool) {
	if len(q.pending) == 0 {
		return "", false
	}
	return q.pending[0].QuestionID, true
}

// Position is the sequence index of the current head.
func (q *Queue) Position() int {
	return q.position
}

// Remaining is the number of items still waiting to be served.
func (q *Queue) Remaining() int {
	return len(q.pending)
}

// Len is the length of the logical question sequence: questions already
// served plus questions still pending.
func (q *Queue) Len() int {
	return q.position + len(q.pending)
}

// Record resolves the head item with an answer and reschedules it.
func (q *Queue) Record(correct bool) Outcome {
	if len(q.pending) == 0 {
		return OutcomeRetired
	}
	it := q.popHead()

	if !q.opts.Enabled {
		// Plain FIFO: an answered item counts as covered.
		if correct {
			it.ConsecutiveCorrect++
		} else {
			it.ConsecutiveCorrect = 0
		}
		it.Mastered = true
		q.mastered++
		return OutcomeMastered
	}

	var gap int
	if correct {
		it.ConsecutiveCorrect++
		if it.ConsecutiveCorrect >= q.opts.MasteryThreshold {
			it.Mastered = true
			q.mastered++
			return OutcomeMastered
		}
		gap = SpacingFactor(it.ConsecutiveCorrect)
	} else {
		it.ConsecutiveCorrect = 0
		gap = LapseSpacing
	}

	if it.Requeues >= q.opts.MaxRequeues {
		it.Retired = true
		q.retired++
		return OutcomeRetired
	}
	it.Requeues++
	q.insertAt(it, it.LastSeenIndex+gap)
	return OutcomeRequeued
}

// Skip moves the head item behind every other pending item without
// touching its streak or requeue count. It returns false on an empty queue.
func (q *Queue) Skip() bool {
	if len(q.pending) == 0 {
		return false
	}
	it := q.popHead()
	it.aim = -1
	q.pending = append(q.pending, it)
	q.renumber(len(q.pending) - 1)
	return true
}

// Items returns copies of the pending items in serving order.
func (q *Queue) Items() []Item {
	out := make([]Item, len(q.pending))
	for i, it := range q.pending {
		out[i] = *it
	}
	return out
}

// Item returns a copy of the state for one question.
func (q *Queue) Item(questionID string) (Item, bool) {
	it, ok := q.items[questionID]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// MasteredCount is the number of items retired by mastery (in FIFO mode,
// by being answered).
func (q *Queue) MasteredCount() int {
	return q.mastered
}

// RetiredCount is the number of items that hit the requeue cap.
func (q *Queue) RetiredCount() int {
	return q.retired
}

func (q *Queue) popHead() *Item {
	it := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	it.LastSeenIndex = q.position
	q.position++
	return it
}

// insertAt puts it into the slot that is served at sequence index target,
// clamped to the pending tail. Every item behind it moves back one slot.
// When an earlier reinsertion aimed at the same index, original order
// decides which of the two goes first.
func (q *Queue) insertAt(it *Item, target int) {
	slot := target - q.position
	if slot > len(q.pending) {
		slot = len(q.pending)
	}
	if slot < 0 {
		slot = 0
	}
	it.aim = q.position + slot
	for slot < len(q.pending) && q.pending[slot].aim == it.aim &&
		q.pending[slot].DueIndex == it.aim && q.pending[slot].order < it.order {
		slot++
	}

	q.pending = append(q.pending, nil)
	copy(q.pending[slot+1:], q.pending[slot:])
	q.pending[slot] = it
	q.renumber(slot)
}

// renumber sets DueIndex from the serving slot for pending[from:].
func (q *Queue) renumber(from int) {
	for i := from; i < len(q.pending); i++ {
		q.pending[i].DueIndex = q.position + i
	}
}
