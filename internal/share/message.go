// Package share mirrors a live annotation session to read-only viewers on
// the practice LAN: mdns discovery, a websocket hub on the editing
// workstation, and a snapshot-on-join protocol.
package share

import (
	"encoding/json"
	"fmt"

	"OrthoMark/internal/annotate"
)

const (
	// TypeAnnotate carries one newly committed annotation.
	TypeAnnotate = "annotate"
	// TypeClear tells viewers to drop every annotation.
	TypeClear = "clear"
	// TypeSnapshot carries the full sequence; sent on join and whenever the
	// host restores state (undo, redo, load).
	TypeSnapshot = "snapshot"
)

// Message is the mirror wire format. Exactly one payload field is set,
// matching Type.
type Message struct {
	Type       string          `json:"type"`
	Annotation json.RawMessage `json:"annotation,omitempty"`
	Snapshot   json.RawMessage `json:"snapshot,omitempty"`
}

// AnnotateMessage wraps a committed annotation for broadcast.
func AnnotateMessage(a annotate.Annotation) (Message, error) {
	raw, err := annotate.Marshal(a)
	if err != nil {
		return Message{}, fmt.Errorf("encoding annotation: %w", err)
	}
	return Message{Type: TypeAnnotate, Annotation: raw}, nil
}

// SnapshotMessage wraps the full sequence for broadcast.
func SnapshotMessage(anns []annotate.Annotation) (Message, error) {
	raw, err := annotate.MarshalSequence(anns)
	if err != nil {
		return Message{}, fmt.Errorf("encoding snapshot: %w", err)
	}
	return Message{Type: TypeSnapshot, Snapshot: raw}, nil
}

// ClearMessage builds the bulk-clear broadcast.
func ClearMessage() Message {
	return Message{Type: TypeClear}
}

// DecodeAnnotation unpacks a TypeAnnotate payload.
func (m Message) DecodeAnnotation() (annotate.Annotation, error) {
	if m.Type != TypeAnnotate {
		return nil, fmt.Errorf("message type %q carries no annotation", m.Type)
	}
	return annotate.Unmarshal(m.Annotation)
}

// DecodeSnapshot unpacks a TypeSnapshot payload.
func (m Message) DecodeSnapshot() ([]annotate.Annotation, error) {
	if m.Type != TypeSnapshot {
		return nil, fmt.Errorf("message type %q carries no snapshot", m.Type)
	}
	return annotate.UnmarshalSequence(m.Snapshot)
}
