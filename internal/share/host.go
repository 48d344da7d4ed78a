package share

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"OrthoMark/internal/annotate"

	"github.com/gorilla/websocket"
)

// Hub runs on the editing workstation and fans committed annotations out to
// every connected viewer. Viewers are read-only; anything they send is
// discarded.
type Hub struct {
	mu       sync.RWMutex
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader

	// snapshot supplies the current sequence for newly joined viewers.
	snapshot func() []annotate.Annotation
	// flatten supplies the current flattened PNG for GET /photo.png.
	flatten func() ([]byte, error)
	// base supplies the clean photo for GET /base.png; viewers bootstrap
	// from it and overlay mirrored annotations themselves.
	base func() ([]byte, error)

	// OnViewersChanged, when set, observes the peer count after every
	// connect and disconnect. Set it before serving.
	OnViewersChanged func(n int)
}

func NewHub(snapshot func() []annotate.Annotation, flatten, base func() ([]byte, error)) *Hub {
	return &Hub{
		conns:    make(map[*websocket.Conn]bool),
		snapshot: snapshot,
		flatten:  flatten,
		base:     base,
		upgrader: websocket.Upgrader{
			// LAN-only tool; the share link is the access control.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Broadcast sends a message to every connected viewer. Dead connections are
// dropped; the editor never blocks on a viewer.
func (h *Hub) Broadcast(m Message) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteJSON(m); err != nil {
			log.Printf("[HUB] dropping viewer %s: %v", c.RemoteAddr(), err)
			h.remove(c)
		}
	}
}

// ViewerCount reports how many viewers are connected.
func (h *Hub) ViewerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = true
	n := len(h.conns)
	h.mu.Unlock()
	log.Printf("[HUB] viewer connected: %s", c.RemoteAddr())
	if h.OnViewersChanged != nil {
		h.OnViewersChanged(n)
	}
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.conns[c]
	if ok {
		delete(h.conns, c)
		c.Close()
	}
	n := len(h.conns)
	h.mu.Unlock()
	if ok && h.OnViewersChanged != nil {
		h.OnViewersChanged(n)
	}
}

func (h *Hub) handleMirror(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HUB] upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	// The join snapshot must complete before the conn becomes visible to
	// Broadcast: the websocket allows at most one concurrent writer, and
	// registering first would let a broadcast interleave with this write.
	snap, err := SnapshotMessage(h.snapshot())
	if err != nil {
		log.Printf("[HUB] building join snapshot: %v", err)
		conn.Close()
		return
	}
	if err := conn.WriteJSON(snap); err != nil {
		log.Printf("[HUB] sending join snapshot: %v", err)
		conn.Close()
		return
	}
	h.add(conn)

	// Drain until the viewer goes away.
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				log.Printf("[HUB] viewer %s disconnected: %v", conn.RemoteAddr(), err)
				return
			}
		}
	}()
}

func (h *Hub) servePNG(w http.ResponseWriter, r *http.Request, produce func() ([]byte, error)) {
	blob, err := produce()
	if err != nil {
		log.Printf("[HUB] producing image for %s: %v", r.RemoteAddr, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(blob); err != nil {
		log.Printf("[HUB] writing image to %s: %v", r.RemoteAddr, err)
	}
}

// Handler exposes the websocket mirror plus the photo endpoints.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mirror", h.handleMirror)
	mux.HandleFunc("/photo.png", func(w http.ResponseWriter, r *http.Request) {
		h.servePNG(w, r, h.flatten)
	})
	mux.HandleFunc("/base.png", func(w http.ResponseWriter, r *http.Request) {
		h.servePNG(w, r, h.base)
	})
	return mux
}

// ListenAndServe blocks serving the hub on the given port.
func (h *Hub) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("[HUB] mirror listening on %s", addr)
	return http.ListenAndServe(addr, h.Handler())
}
