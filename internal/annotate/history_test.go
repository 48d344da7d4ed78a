package annotate

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

func mark(n int) Annotation {
	return &Text{
		Attrs: Attrs{
			ID:        fmt.Sprintf("mark-%d", n),
			X:         float64(n * 10),
			Y:         float64(n * 5),
			Color:     "#e53935",
			Width:     3,
			CreatedAt: time.Date(2026, 8, 30, 9, 0, n, 0, time.UTC),
		},
		Body: fmt.Sprintf("note %d", n),
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	t.Parallel()

	const n = 5
	h := NewHistory(nil)
	states := [][]Annotation{nil}
	var seq []Annotation
	for i := 1; i <= n; i++ {
		seq = append(seq, mark(i))
		h.Push(seq)
		states = append(states, CloneSequence(seq))
	}

	for i := n; i > 0; i-- {
		snap, ok := h.Undo()
		if !ok {
			t.Fatalf("undo %d failed", n-i+1)
		}
		if !reflect.DeepEqual(snap, states[i-1]) && !(len(snap) == 0 && len(states[i-1]) == 0) {
			t.Fatalf("undo to state %d: got %d annotations, want %d", i-1, len(snap), len(states[i-1]))
		}
	}
	if h.CanUndo() {
		t.Fatal("expected undo floor after unwinding every commit")
	}
	if _, ok := h.Undo(); ok {
		t.Fatal("undo past the floor should be a no-op")
	}

	for i := 1; i <= n; i++ {
		snap, ok := h.Redo()
		if !ok {
			t.Fatalf("redo %d failed", i)
		}
		if !reflect.DeepEqual(snap, states[i]) {
			t.Fatalf("redo to state %d: snapshot mismatch", i)
		}
	}
	if h.CanRedo() {
		t.Fatal("expected redo ceiling after replaying every commit")
	}
}

func TestUndoThenRedoIsExact(t *testing.T) {
	t.Parallel()

	h := NewHistory(nil)
	seq := []Annotation{mark(1), mark(2)}
	h.Push(seq[:1])
	h.Push(seq)

	if _, ok := h.Undo(); !ok {
		t.Fatal("undo failed")
	}
	snap, ok := h.Redo()
	if !ok {
		t.Fatal("redo failed")
	}
	if !reflect.DeepEqual(snap, seq) {
		t.Fatalf("undo+redo must restore identical state, got %#v", snap)
	}
}

func TestHistoryCap(t *testing.T) {
	t.Parallel()

	h := NewHistory(nil)
	var seq []Annotation
	for i := 1; i <= MaxSnapshots+5; i++ {
		seq = append(seq, mark(i))
		h.Push(seq)
	}
	if h.Len() != MaxSnapshots {
		t.Fatalf("retained %d snapshots, want %d", h.Len(), MaxSnapshots)
	}

	// The seed and the first five pushes were evicted; the oldest reachable
	// state is the sixth commit.
	undos := 0
	var oldest []Annotation
	for {
		snap, ok := h.Undo()
		if !ok {
			break
		}
		oldest = snap
		undos++
	}
	if undos != MaxSnapshots-1 {
		t.Fatalf("got %d undos, want %d", undos, MaxSnapshots-1)
	}
	if len(oldest) != 6 {
		t.Fatalf("oldest reachable state has %d annotations, want 6", len(oldest))
	}
}

func TestCommitAfterUndoDiscardsRedo(t *testing.T) {
	t.Parallel()

	h := NewHistory(nil)
	h.Push([]Annotation{mark(1)})
	h.Push([]Annotation{mark(1), mark(2)})

	if _, ok := h.Undo(); !ok {
		t.Fatal("undo failed")
	}
	h.Push([]Annotation{mark(1), mark(3)})

	if h.CanRedo() {
		t.Fatal("commit after undo must discard the redo tail")
	}
	if _, ok := h.Redo(); ok {
		t.Fatal("redo after a fresh commit should be a no-op")
	}
}

func TestClearIsUndoable(t *testing.T) {
	t.Parallel()

	h := NewHistory(nil)
	seq := []Annotation{mark(1), mark(2)}
	h.Push(seq)
	h.Push(nil) // clear

	snap, ok := h.Undo()
	if !ok {
		t.Fatal("undo after clear failed")
	}
	if !reflect.DeepEqual(snap, seq) {
		t.Fatalf("undoing clear must restore the sequence, got %d annotations", len(snap))
	}
}

func TestHistorySeedIsStartingState(t *testing.T) {
	t.Parallel()

	initial := []Annotation{mark(9)}
	h := NewHistory(initial)
	h.Push(append(CloneSequence(initial), mark(10)))

	snap, ok := h.Undo()
	if !ok {
		t.Fatal("undo failed")
	}
	if !reflect.DeepEqual(snap, initial) {
		t.Fatal("undoing the only commit must land on the seeded state")
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	t.Parallel()

	h := NewHistory(nil)
	stroke := &Freehand{
		Attrs:  mark(1).Base(),
		Points: []Point{{0, 0}, {5, 5}},
	}
	h.Push([]Annotation{stroke})

	// Mutating the caller's copy must not reach into the stored snapshot.
	stroke.Points[0] = Point{99, 99}

	h.Push([]Annotation{stroke, mark(2)})
	snap, ok := h.Undo()
	if !ok {
		t.Fatal("undo failed")
	}
	got := snap[0].(*Freehand)
	if got.Points[0] != (Point{0, 0}) {
		t.Fatalf("snapshot shares memory with caller: %v", got.Points[0])
	}
}
