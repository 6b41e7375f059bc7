package queue

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/smartq/backend/internal/config"
	"github.com/smartq/backend/internal/models"
	"github.com/smartq/backend/internal/ws"
)

// Registry holds one Service per configured name, created once at startup.
// Queue state lives for the process only; a restart starts from empty.
type Registry struct {
	services  map[string]*Service
	order     []string
	Operators *Directory
}

func NewRegistry(defs []config.ServiceDef, counters []string, historyLimit int, logger zerolog.Logger) *Registry {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	r := &Registry{
		services:  map[string]*Service{},
		Operators: NewDirectory(),
	}
	for _, def := range defs {
		if _, exists := r.services[def.Key]; exists {
			continue
		}
		r.services[def.Key] = &Service{
			name:     def.Key,
			label:    def.Label,
			counters: counters,
			limit:    historyLimit,
			hub:      ws.NewHub(logger.With().Str("queue", def.Key).Logger()),
			resolve:  r.Operators.Resolve,
		}
		r.order = append(r.order, def.Key)
	}
	return r
}

func (r *Registry) Lookup(name string) (*Service, error) {
	svc, ok := r.services[name]
	if !ok {
		return nil, ErrUnknownService
	}
	return svc, nil
}

func (r *Registry) Descriptors() []models.ServiceDescriptor {
	out := make([]models.ServiceDescriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.services[name].Descriptor())
	}
	return out
}

// Transfer moves a completed visit from the source history into the target
// waiting list exactly once. The new ticket gets a fresh number from the
// target sequence; the original number is never reused. Both services are
// locked in lexicographic name order so opposing transfers cannot deadlock.
func (r *Registry) Transfer(source string, number int, target string) (models.WaitingEntry, error) {
	src, err := r.Lookup(source)
	if err != nil {
		return models.WaitingEntry{}, err
	}
	tgt, err := r.Lookup(target)
	if err != nil {
		return models.WaitingEntry{}, err
	}

	lockPair(src, tgt)
	defer unlockPair(src, tgt)

	idx := -1
	for i := range src.history {
		if src.history[i].Number == number {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.WaitingEntry{}, ErrUnknownTicket
	}
	if src.history[idx].Transferred {
		return models.WaitingEntry{}, ErrTransferConflict
	}
	src.history[idx].Transferred = true
	src.history[idx].TransferredTo = target

	tgt.next++
	entry := models.WaitingEntry{
		Number:    tgt.next,
		Name:      src.history[idx].Name,
		CreatedAt: time.Now().UTC(),
	}
	tgt.waiting = append(tgt.waiting, entry)

	tgt.hub.Broadcast(ws.QueueUpdate(tgt.waitingCopyLocked()), nil)
	tgt.broadcastStatusLocked()
	src.hub.Broadcast(ws.History(src.historyViewLocked()), nil)

	return entry, nil
}

func lockPair(a, b *Service) {
	if a == b {
		a.mu.Lock()
		return
	}
	if a.name < b.name {
		a.mu.Lock()
		b.mu.Lock()
		return
	}
	b.mu.Lock()
	a.mu.Lock()
}

func unlockPair(a, b *Service) {
	a.mu.Unlock()
	if a != b {
		b.mu.Unlock()
	}
}
