package twoq

import (
	"testing"

	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/IvanBrykalov/cellsize/policy"
)

// --- test doubles ---

type testEntry struct{ k geom.Position }

func (e *testEntry) Key() geom.Position { return e.k }

type countingHooks struct {
	pushes, touches int
}

func (h *countingHooks) Touch(policy.Entry[geom.Position])  { h.touches++ }
func (h *countingHooks) Push(policy.Entry[geom.Position])   { h.pushes++ }
func (h *countingHooks) Unlink(policy.Entry[geom.Position]) {}
func (h *countingHooks) Oldest() policy.Entry[geom.Position] {
	return nil
}
func (h *countingHooks) Len() int { return 0 }

func bind(probation, ghosts int) (*twoQ[geom.Position], *countingHooks) {
	h := &countingHooks{}
	return New[geom.Position](probation, ghosts).Bind(h).(*twoQ[geom.Position]), h
}

// --- tests ---

func TestTwoQ_FirstAdmissionGoesToProbation(t *testing.T) {
	t.Parallel()

	q, h := bind(2, 4)
	e := &testEntry{k: geom.At(0, 0)}

	if v := q.Admitted(e); v != nil {
		t.Fatalf("no victim expected, got %v", v)
	}
	if _, ok := q.inProb[e]; !ok || q.probation.Len() != 1 {
		t.Fatalf("entry must sit in probation")
	}
	if h.pushes != 1 {
		t.Fatalf("entry must be linked in the main list, pushes=%d", h.pushes)
	}
}

func TestTwoQ_ProbationOverflowNominatesOldest(t *testing.T) {
	t.Parallel()

	q, _ := bind(2, 4)
	a := &testEntry{k: geom.At(0, 0)}
	b := &testEntry{k: geom.At(0, 1)}
	c := &testEntry{k: geom.At(0, 2)}

	q.Admitted(a)
	q.Admitted(b)
	if v := q.Admitted(c); v != a {
		t.Fatalf("want oldest probation entry %v as victim, got %v", a, v)
	}
}

func TestTwoQ_DroppedProbationBecomesGhost(t *testing.T) {
	t.Parallel()

	q, _ := bind(2, 2)
	a := &testEntry{k: geom.At(1, 1)}
	q.Admitted(a)
	q.Dropped(a)

	if _, ok := q.inProb[a]; ok {
		t.Fatal("dropped entry must leave probation")
	}
	if _, ok := q.ghostOf[a.k]; !ok {
		t.Fatal("dropped probation key must be remembered as a ghost")
	}
}

func TestTwoQ_GhostReadmissionSkipsProbation(t *testing.T) {
	t.Parallel()

	q, _ := bind(1, 2)
	a := &testEntry{k: geom.At(3, 0)}
	q.Admitted(a)
	q.Dropped(a)

	again := &testEntry{k: geom.At(3, 0)}
	if v := q.Admitted(again); v != nil {
		t.Fatalf("ghost readmission must not nominate a victim, got %v", v)
	}
	if _, ok := q.inProb[again]; ok {
		t.Fatal("ghost readmission must bypass probation")
	}
	if _, ok := q.ghostOf[again.k]; ok {
		t.Fatal("ghost must be consumed on readmission")
	}
}

func TestTwoQ_AccessPromotes(t *testing.T) {
	t.Parallel()

	q, h := bind(2, 2)
	a := &testEntry{k: geom.At(0, 5)}
	q.Admitted(a)
	q.Accessed(a)

	if _, ok := q.inProb[a]; ok {
		t.Fatal("accessed entry must leave probation")
	}
	if h.touches != 1 {
		t.Fatalf("Accessed must touch once, got %d", h.touches)
	}
}

func TestTwoQ_GhostCapacityBounded(t *testing.T) {
	t.Parallel()

	q, _ := bind(4, 2)
	for i := 0; i < 3; i++ {
		e := &testEntry{k: geom.At(0, i)}
		q.Admitted(e)
		q.Dropped(e)
	}
	if q.ghosts.Len() != 2 {
		t.Fatalf("ghosts must be capped at 2, got %d", q.ghosts.Len())
	}
	if _, ok := q.ghostOf[geom.At(0, 0)]; ok {
		t.Fatal("oldest ghost must be forgotten first")
	}
}
