package ws

import (
	"sync"

	"github.com/rs/zerolog"
)

// Hub tracks the viewers of one service. Delivery to each viewer is
// independent: a viewer whose buffer is full is evicted without affecting
// the others. Callers serialize Add/Broadcast per service, so each viewer
// receives broadcasts in mutation order.
type Hub struct {
	mu      sync.Mutex
	viewers map[string]*Viewer
	logger  zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		viewers: map[string]*Viewer{},
		logger:  logger,
	}
}

func (h *Hub) Add(v *Viewer) {
	h.mu.Lock()
	h.viewers[v.ID] = v
	h.mu.Unlock()
}

// Remove is idempotent and reports whether the viewer was still registered.
func (h *Hub) Remove(v *Viewer) bool {
	h.mu.Lock()
	_, ok := h.viewers[v.ID]
	if ok {
		delete(h.viewers, v.ID)
	}
	h.mu.Unlock()
	if ok {
		v.close()
	}
	return ok
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Broadcast queues msg for every viewer whose role matches the filter, or
// all viewers when filter is nil. Viewers that cannot accept the message
// are collected first and evicted after the sweep.
func (h *Hub) Broadcast(msg []byte, filter *Role) {
	h.mu.Lock()
	var evicted []*Viewer
	for _, v := range h.viewers {
		if filter != nil && v.Role != *filter {
			continue
		}
		if !v.trySend(msg) {
			evicted = append(evicted, v)
		}
	}
	for _, v := range evicted {
		delete(h.viewers, v.ID)
	}
	h.mu.Unlock()

	for _, v := range evicted {
		v.close()
		h.logger.Warn().Str("viewer_id", v.ID).Str("role", string(v.Role)).Msg("viewer evicted, send buffer full")
	}
}

// SendTo queues msg for a single viewer, evicting it on failure.
func (h *Hub) SendTo(v *Viewer, msg []byte) bool {
	if v.trySend(msg) {
		return true
	}
	h.Remove(v)
	h.logger.Warn().Str("viewer_id", v.ID).Str("role", string(v.Role)).Msg("viewer evicted during direct send")
	return false
}
