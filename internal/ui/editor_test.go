package ui

import (
	"image"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"OrthoMark/internal/annotate"
)

func testPhoto() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 40, 30))
}

func note(id, body string) annotate.Annotation {
	return &annotate.Text{
		Attrs: annotate.Attrs{
			ID: id, X: 5, Y: 5, Color: "#000000", Width: 3,
			CreatedAt: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		},
		Body: body,
	}
}

func TestHistoryChangeTracksPosition(t *testing.T) {
	test.NewApp()
	e := NewEditor(testPhoto(), nil, false)

	var canUndo, canRedo bool
	e.OnHistoryChange = func(u, r bool) { canUndo, canRedo = u, r }

	e.Load([]annotate.Annotation{note("n1", "crowding")})
	if !canUndo || canRedo {
		t.Fatalf("after load: canUndo=%v canRedo=%v, want true/false", canUndo, canRedo)
	}
	e.Undo()
	if canUndo || !canRedo {
		t.Fatalf("after undo to floor: canUndo=%v canRedo=%v, want false/true", canUndo, canRedo)
	}
	e.Redo()
	if !canUndo || canRedo {
		t.Fatalf("after redo: canUndo=%v canRedo=%v, want true/false", canUndo, canRedo)
	}
	e.Clear()
	if !canUndo || canRedo {
		t.Fatalf("after clear: canUndo=%v canRedo=%v, want true/false", canUndo, canRedo)
	}
	if !e.CanUndo() || e.CanRedo() {
		t.Fatalf("CanUndo/CanRedo disagree with the last callback")
	}
}

func TestReadOnlyEditorIgnoresMutations(t *testing.T) {
	test.NewApp()
	e := NewEditor(testPhoto(), []annotate.Annotation{note("n1", "rotation")}, true)

	e.Undo()
	e.Redo()
	e.Clear()
	if got := len(e.Annotations()); got != 1 {
		t.Fatalf("read-only editor mutated: %d annotations, want 1", got)
	}
}

func TestMirrorAppliesWithoutHistory(t *testing.T) {
	test.NewApp()
	e := NewEditor(testPhoto(), nil, true)

	e.ApplyRemote(note("n1", "spacing"))
	if got := len(e.Annotations()); got != 1 {
		t.Fatalf("after ApplyRemote: %d annotations, want 1", got)
	}
	e.ApplySnapshot([]annotate.Annotation{note("a", "upper"), note("b", "lower")})
	if got := len(e.Annotations()); got != 2 {
		t.Fatalf("after ApplySnapshot: %d annotations, want 2", got)
	}
	e.ApplySnapshot(nil)
	if got := len(e.Annotations()); got != 0 {
		t.Fatalf("after empty ApplySnapshot: %d annotations, want 0", got)
	}
	if e.CanUndo() || e.CanRedo() {
		t.Fatal("mirrored state must never enter the local history")
	}
}
