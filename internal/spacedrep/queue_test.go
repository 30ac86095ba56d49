package spacedrep

import (
	"reflect"
	"testing"
)

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.QuestionID
	}
	return out
}

func srsOpts() Options {
	return Options{Enabled: true, MasteryThreshold: 2, MaxRequeues: 3}
}

func TestNewQueue_OriginalOrder(t *testing.T) {
	q := NewQueue([]string{"a", "b", "c"}, srsOpts())

	if got := ids(q.Items()); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Items = %v, want [a b c]", got)
	}
	for i, it := range q.Items() {
		if it.DueIndex != i {
			t.Errorf("item %s DueIndex = %d, want %d", it.QuestionID, it.DueIndex, i)
		}
		if it.Seen() {
			t.Errorf("item %s should not be seen yet", it.QuestionID)
		}
	}
	if q.Len() != 3 || q.Remaining() != 3 || q.Position() != 0 {
		t.Errorf("Len/Remaining/Position = %d/%d/%d, want 3/3/0", q.Len(), q.Remaining(), q.Position())
	}
}

func TestRecord_LapseResurfacesSoon(t *testing.T) {
	q := NewQueue([]string{"a", "b", "c", "d"}, srsOpts())

	if out := q.Record(false); out != OutcomeRequeued {
		t.Fatalf("Record(false) = %s, want requeued", out)
	}

	// a was answered at index 0, so it is due at 0+LapseSpacing = 2 and
	// wins the tie against c (due 2) by original order.
	if got := ids(q.Items()); !reflect.DeepEqual(got, []string{"b", "a", "c", "d"}) {
		t.Errorf("Items = %v, want [b a c d]", got)
	}
	it, _ := q.Item("a")
	if it.ConsecutiveCorrect != 0 || it.DueIndex != 2 || it.LastSeenIndex != 0 {
		t.Errorf("item a = %+v, want cc=0 due=2 lastSeen=0", it)
	}
}

func TestRecord_CorrectSpacingGrows(t *testing.T) {
	q := NewQueue([]string{"a", "b", "c", "d", "e", "f", "g", "h"}, Options{Enabled: true, MasteryThreshold: 3})

	q.Record(true) // a at 0, cc=1 → due 3
	it, _ := q.Item("a")
	if it.DueIndex != 3 {
		t.Fatalf("a DueIndex = %d, want 3", it.DueIndex)
	}
	if got := ids(q.Items()); !reflect.DeepEqual(got, []string{"b", "c", "a", "d", "e", "f", "g", "h"}) {
		t.Errorf("Items = %v", got)
	}

	q.Record(true) // b
	q.Record(true) // c
	cur, _ := q.Current()
	if cur != "a" {
		t.Fatalf("Current = %s, want a", cur)
	}
	q.Record(true) // a at 3, cc=2 → due 3+6 = 9
	it, _ = q.Item("a")
	if it.ConsecutiveCorrect != 2 || it.DueIndex != 9 {
		t.Errorf("a = %+v, want cc=2 due=9", it)
	}
}

func TestRecord_RepeatedLapsesKeepExactSpacing(t *testing.T) {
	qids := []string{"q0", "q1", "q2", "q3", "q4", "q5", "q6", "q7"}
	q := NewQueue(qids, Options{Enabled: true, MasteryThreshold: 2, MaxRequeues: 10})

	due := map[string]int{}
	var served []string
	for i := 0; i < 8; i++ {
		id, ok := q.Current()
		if !ok {
			t.Fatalf("queue empty at %d", i)
		}
		if want, ok := due[id]; ok && want != q.Position() {
			t.Errorf("%s served at %d, want %d", id, q.Position(), want)
		}
		served = append(served, id)
		due[id] = q.Position() + LapseSpacing
		q.Record(false)
	}

	want := []string{"q0", "q1", "q0", "q1", "q0", "q1", "q0", "q1"}
	if !reflect.DeepEqual(served, want) {
		t.Errorf("served = %v, want %v", served, want)
	}
	for i, it := range q.Items() {
		if it.DueIndex != q.Position()+i {
			t.Errorf("slot %d (%s) DueIndex = %d, want %d", i, it.QuestionID, it.DueIndex, q.Position()+i)
		}
	}
}

func TestRecord_MixedAnswersFollowSpacingFactor(t *testing.T) {
	q := NewQueue([]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
		Options{Enabled: true, MasteryThreshold: 3, MaxRequeues: 5})

	answer := func(wantID string, correct bool) {
		t.Helper()
		id, _ := q.Current()
		if id != wantID {
			t.Fatalf("Current = %s at %d, want %s (queue %v)", id, q.Position(), wantID, ids(q.Items()))
		}
		q.Record(correct)
	}
	dueOf := func(id string) int {
		t.Helper()
		it, _ := q.Item(id)
		return it.DueIndex
	}

	answer("a", true) // 0 + SpacingFactor(1)
	if got := dueOf("a"); got != SpacingFactor(1) {
		t.Errorf("a due = %d, want %d", got, SpacingFactor(1))
	}

	// b aims at 1+2 = 3, where a is already scheduled; a keeps the slot
	// by original order.
	answer("b", false)
	if got := ids(q.Items())[:3]; !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Errorf("head = %v, want [c a b]", got)
	}
	if dueOf("a") != 3 || dueOf("b") != 4 {
		t.Errorf("a/b due = %d/%d, want 3/4", dueOf("a"), dueOf("b"))
	}

	answer("c", false) // 2 + LapseSpacing
	if dueOf("c") != 4 || dueOf("b") != 5 {
		t.Errorf("c/b due = %d/%d, want 4/5", dueOf("c"), dueOf("b"))
	}

	answer("a", true) // 3 + SpacingFactor(2)
	if got, want := dueOf("a"), 3+SpacingFactor(2); got != want {
		t.Errorf("a due = %d, want %d", got, want)
	}

	answer("c", true) // 4 + SpacingFactor(1), pushes a back by one
	if got, want := dueOf("c"), 4+SpacingFactor(1); got != want {
		t.Errorf("c due = %d, want %d", got, want)
	}
	if got, want := dueOf("a"), 3+SpacingFactor(2)+1; got != want {
		t.Errorf("a due = %d, want %d", got, want)
	}
	if got := ids(q.Items()); !reflect.DeepEqual(got, []string{"b", "d", "c", "e", "f", "a", "g", "h", "i", "j"}) {
		t.Errorf("Items = %v", got)
	}
}

func TestRecord_ClampedToQueueEnd(t *testing.T) {
	q := NewQueue([]string{"a", "b"}, Options{Enabled: true, MasteryThreshold: 5})

	q.Record(true) // a: gap 3, only b pending → clamp to 2
	it, _ := q.Item("a")
	if it.DueIndex != 2 {
		t.Errorf("a DueIndex = %d, want 2 (clamped)", it.DueIndex)
	}
	if got := ids(q.Items()); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("Items = %v, want [b a]", got)
	}
}

func TestRecord_MasteryRemovesItem(t *testing.T) {
	q := NewQueue([]string{"a"}, srsOpts())

	if out := q.Record(true); out != OutcomeRequeued {
		t.Fatalf("first correct = %s, want requeued", out)
	}
	if out := q.Record(true); out != OutcomeMastered {
		t.Fatalf("second correct = %s, want mastered", out)
	}
	if _, ok := q.Current(); ok {
		t.Error("expected empty queue after mastery")
	}
	if q.MasteredCount() != 1 {
		t.Errorf("MasteredCount = %d, want 1", q.MasteredCount())
	}
	if q.Position() != 2 || q.Len() != 2 {
		t.Errorf("Position/Len = %d/%d, want 2/2", q.Position(), q.Len())
	}
}

func TestRecord_RequeueCapRetires(t *testing.T) {
	q := NewQueue([]string{"a"}, Options{Enabled: true, MaxRequeues: 2})

	outcomes := []Outcome{q.Record(false), q.Record(false), q.Record(false)}
	want := []Outcome{OutcomeRequeued, OutcomeRequeued, OutcomeRetired}
	if !reflect.DeepEqual(outcomes, want) {
		t.Errorf("outcomes = %v, want %v", outcomes, want)
	}
	if q.RetiredCount() != 1 || q.MasteredCount() != 0 {
		t.Errorf("Retired/Mastered = %d/%d, want 1/0", q.RetiredCount(), q.MasteredCount())
	}
	if _, ok := q.Current(); ok {
		t.Error("expected empty queue after retirement")
	}
}

func TestFIFO_EachQuestionOnce(t *testing.T) {
	q := NewQueue([]string{"a", "b", "c"}, Options{Enabled: false})

	var served []string
	for {
		id, ok := q.Current()
		if !ok {
			break
		}
		served = append(served, id)
		q.Record(len(served)%2 == 0)
	}
	if !reflect.DeepEqual(served, []string{"a", "b", "c"}) {
		t.Errorf("served = %v, want [a b c]", served)
	}
	if q.MasteredCount() != 3 {
		t.Errorf("MasteredCount = %d, want 3 (coverage)", q.MasteredCount())
	}
}

func TestSkip_MovesToBack(t *testing.T) {
	q := NewQueue([]string{"a", "b", "c"}, srsOpts())

	if !q.Skip() {
		t.Fatal("Skip returned false")
	}
	if got := ids(q.Items()); !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Errorf("Items = %v, want [b c a]", got)
	}
	it, _ := q.Item("a")
	if it.Requeues != 0 || it.ConsecutiveCorrect != 0 {
		t.Errorf("skip should not count as requeue or answer: %+v", it)
	}
}

func TestSkip_SingleItemComesBack(t *testing.T) {
	q := NewQueue([]string{"a"}, srsOpts())
	q.Skip()
	if cur, ok := q.Current(); !ok || cur != "a" {
		t.Errorf("Current = %q, %v; want a, true", cur, ok)
	}
	if q.Position() != 1 {
		t.Errorf("Position = %d, want 1", q.Position())
	}
}

func TestSkip_EmptyQueue(t *testing.T) {
	q := NewQueue(nil, srsOpts())
	if q.Skip() {
		t.Error("Skip on empty queue should return false")
	}
	if out := q.Record(true); out != OutcomeRetired {
		t.Errorf("Record on empty queue = %s, want retired", out)
	}
}

func TestSpacingFactor(t *testing.T) {
	tests := []struct {
		cc   int
		want int
	}{
		{0, LapseSpacing},
		{1, 3},
		{2, 6},
		{3, 12},
		{4, 24},
		{5, 48},
		{6, 96},
	}
	for _, tt := range tests {
		if got := SpacingFactor(tt.cc); got != tt.want {
			t.Errorf("SpacingFactor(%d) = %d, want %d", tt.cc, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.MasteryThreshold != DefaultMasteryThreshold || o.MaxRequeues != DefaultMaxRequeues {
		t.Errorf("defaults = %+v", o)
	}
}
