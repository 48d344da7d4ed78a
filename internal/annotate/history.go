package annotate

// MaxSnapshots caps how many undo states are retained. Snapshots are full
// deep copies, so the cap also bounds memory.
const MaxSnapshots = 20

// History is a linear undo/redo stack over full snapshots of the annotation
// sequence. Pushing after an undo discards the redone-away tail; there is no
// redo branching.
type History struct {
	snaps [][]Annotation
	index int
}

// NewHistory seeds the stack with the editing session's starting state, so
// undoing every later commit lands back on it.
func NewHistory(initial []Annotation) *History {
	return &History{
		snaps: [][]Annotation{CloneSequence(initial)},
		index: 0,
	}
}

// Push records a new snapshot, truncating anything beyond the current index
// first and evicting the oldest entry once the cap is hit.
func (h *History) Push(snap []Annotation) {
	h.snaps = append(h.snaps[:h.index+1], CloneSequence(snap))
	if len(h.snaps) > MaxSnapshots {
		h.snaps = h.snaps[len(h.snaps)-MaxSnapshots:]
	}
	h.index = len(h.snaps) - 1
}

// Undo steps back one snapshot. Returns false at the oldest retained state.
func (h *History) Undo() ([]Annotation, bool) {
	if h.index <= 0 {
		return nil, false
	}
	h.index--
	return CloneSequence(h.snaps[h.index]), true
}

// Redo steps forward one snapshot. Returns false at the newest state.
func (h *History) Redo() ([]Annotation, bool) {
	if h.index >= len(h.snaps)-1 {
		return nil, false
	}
	h.index++
	return CloneSequence(h.snaps[h.index]), true
}

func (h *History) CanUndo() bool { return h.index > 0 }
func (h *History) CanRedo() bool { return h.index < len(h.snaps)-1 }

// Len reports how many snapshots are retained.
func (h *History) Len() int { return len(h.snaps) }
