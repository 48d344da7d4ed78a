package annotate

import (
	"encoding/json"
	"fmt"
)

// envelope tags each serialized annotation with its kind so the sequence can
// be decoded back into concrete types. Used for both saved files and the
// mirror wire format.
type envelope struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Marshal serializes one annotation with its kind tag.
func Marshal(a Annotation) ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Kind: a.Kind(), Data: data})
}

// Unmarshal decodes one kind-tagged annotation.
func Unmarshal(data []byte) (Annotation, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return decodeEnvelope(env)
}

func decodeEnvelope(env envelope) (Annotation, error) {
	var a Annotation
	switch env.Kind {
	case KindArrow:
		a = &Arrow{}
	case KindCircle:
		a = &Circle{}
	case KindRect:
		a = &Rect{}
	case KindFreehand:
		a = &Freehand{}
	case KindText:
		a = &Text{}
	default:
		return nil, fmt.Errorf("unknown annotation kind %q", env.Kind)
	}
	if err := json.Unmarshal(env.Data, a); err != nil {
		return nil, fmt.Errorf("decoding %s annotation: %w", env.Kind, err)
	}
	return a, nil
}

// MarshalSequence serializes an ordered annotation sequence.
func MarshalSequence(anns []Annotation) ([]byte, error) {
	envs := make([]envelope, len(anns))
	for i, a := range anns {
		data, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		envs[i] = envelope{Kind: a.Kind(), Data: data}
	}
	return json.MarshalIndent(envs, "", "  ")
}

// UnmarshalSequence decodes a saved annotation sequence, preserving order.
func UnmarshalSequence(data []byte) ([]Annotation, error) {
	var envs []envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, err
	}
	anns := make([]Annotation, 0, len(envs))
	for _, env := range envs {
		a, err := decodeEnvelope(env)
		if err != nil {
			return nil, err
		}
		anns = append(anns, a)
	}
	return anns, nil
}
