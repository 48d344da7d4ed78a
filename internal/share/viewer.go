package share

import (
	"fmt"
	"log"

	"github.com/gorilla/websocket"

	"OrthoMark/internal/annotate"
)

// ViewerHandlers receive mirror messages on the viewer side.
type ViewerHandlers struct {
	OnAnnotate func(a annotate.Annotation)
	OnSnapshot func(anns []annotate.Annotation)
	OnClear    func()
}

// Listen dials a host's mirror endpoint and applies incoming messages until
// the connection drops. addr is "host:port".
func Listen(addr string, handlers ViewerHandlers) error {
	url := fmt.Sprintf("ws://%s/mirror", addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()
	log.Printf("[VIEWER] connected to %s", addr)

	for {
		var m Message
		if err := conn.ReadJSON(&m); err != nil {
			return fmt.Errorf("host connection lost: %w", err)
		}
		switch m.Type {
		case TypeAnnotate:
			a, err := m.DecodeAnnotation()
			if err != nil {
				log.Printf("[VIEWER] bad annotation, skipping: %v", err)
				continue
			}
			if handlers.OnAnnotate != nil {
				handlers.OnAnnotate(a)
			}
		case TypeSnapshot:
			anns, err := m.DecodeSnapshot()
			if err != nil {
				log.Printf("[VIEWER] bad snapshot, skipping: %v", err)
				continue
			}
			if handlers.OnSnapshot != nil {
				handlers.OnSnapshot(anns)
			}
		case TypeClear:
			if handlers.OnClear != nil {
				handlers.OnClear()
			}
		default:
			log.Printf("[VIEWER] unknown message type %q, skipping", m.Type)
		}
	}
}
