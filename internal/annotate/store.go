package annotate

import "sync"

// Store holds the ordered annotation sequence for one photo being edited.
// It is append-preferred: committed annotations are never edited in place,
// and the only bulk mutation paths are ReplaceAll (undo/redo restore) and
// Clear.
type Store struct {
	mu   sync.RWMutex
	anns []Annotation
}

func NewStore(initial []Annotation) *Store {
	return &Store{anns: CloneSequence(initial)}
}

// Append adds a committed annotation to the end of the sequence.
func (s *Store) Append(a Annotation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anns = append(s.anns, a)
}

// ReplaceAll swaps in a restored snapshot. It deliberately does not touch
// history; the caller drives undo/redo and would loop otherwise.
func (s *Store) ReplaceAll(anns []Annotation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anns = CloneSequence(anns)
}

// Clear empties the sequence. Callers push a history snapshot after clearing
// so the operation stays undoable.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anns = nil
}

// All returns a deep copy of the sequence in commit order.
func (s *Store) All() []Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneSequence(s.anns)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.anns)
}
