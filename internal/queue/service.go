package queue

import (
	"sync"
	"time"

	"github.com/smartq/backend/internal/models"
	"github.com/smartq/backend/internal/ws"
)

// Service is one independently queued line. All read-modify-write operations
// hold mu for their whole duration, including the enqueue of the resulting
// broadcasts, so every viewer sees deltas in mutation order and a connect
// snapshot can never interleave with a mutation.
type Service struct {
	name     string
	label    string
	counters []string
	limit    int

	mu      sync.Mutex
	waiting []models.WaitingEntry
	current *models.CalledEntry
	audio   []byte
	history []models.HistoryEntry
	next    int
	muted   bool

	hub     *ws.Hub
	resolve func(string) (string, bool)
}

func (s *Service) Name() string  { return s.name }
func (s *Service) Label() string { return s.label }

func (s *Service) Descriptor() models.ServiceDescriptor {
	return models.ServiceDescriptor{
		Name:     s.name,
		Label:    s.label,
		Counters: s.counters,
	}
}

// Enqueue allocates the next ticket number and appends to the waiting list.
func (s *Service) Enqueue(name string, counter string) models.WaitingEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	entry := models.WaitingEntry{
		Number:    s.next,
		Name:      name,
		Counter:   counter,
		CreatedAt: time.Now().UTC(),
	}
	s.waiting = append(s.waiting, entry)

	s.hub.Broadcast(ws.QueueUpdate(s.waitingCopyLocked()), nil)
	s.broadcastStatusLocked()
	return entry
}

// CallNext pops the waiting head and makes it the current call. On an empty
// list it clears any former current and returns nil; that is not an error.
// A live current is left in place, completion is always explicit.
func (s *Service) CallNext(counter string) *models.CalledEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.waiting) == 0 {
		s.current = nil
		s.audio = nil
		s.hub.Broadcast(ws.Current(nil), nil)
		s.broadcastStatusLocked()
		return nil
	}

	head := s.waiting[0]
	s.waiting = s.waiting[1:]
	if counter == "" {
		counter = head.Counter
	}
	cur := models.CalledEntry{
		Number:   head.Number,
		Name:     head.Name,
		Counter:  counter,
		CalledAt: time.Now().UTC(),
	}
	s.current = &cur
	s.audio = nil

	s.hub.Broadcast(ws.Current(&cur), nil)
	s.hub.Broadcast(ws.QueueUpdate(s.waitingCopyLocked()), nil)
	s.broadcastStatusLocked()

	out := cur
	return &out
}

// Complete records a visit at the front of history regardless of whether it
// matches the current call; operators may record visits handled out of band.
// When it does match, the current call is cleared as well.
func (s *Service) Complete(number int, name string, operatorID string) models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	matchesCurrent := s.current != nil && s.current.Number == number
	if name == "" && matchesCurrent {
		name = s.current.Name
	}
	if name == "" {
		name = "Unknown"
	}

	entry := models.HistoryEntry{
		Number:      number,
		Name:        name,
		Service:     s.label,
		CompletedBy: operatorID,
		CompletedAt: time.Now().UTC(),
	}
	s.history = append([]models.HistoryEntry{entry}, s.history...)
	if len(s.history) > s.limit {
		s.history = s.history[:s.limit]
	}

	s.hub.Broadcast(ws.Complete(number), nil)
	s.hub.Broadcast(ws.History(s.historyViewLocked()), nil)
	s.broadcastStatusLocked()

	if matchesCurrent {
		s.current = nil
		s.audio = nil
		s.hub.Broadcast(ws.Current(nil), nil)
	}
	return s.decorate(entry)
}

func (s *Service) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
	s.broadcastStatusLocked()
}

func (s *Service) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Reannounce replays the cached announcement to display viewers. It returns
// false with a nil error when no audio has been rendered yet.
func (s *Service) Reannounce() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false, ErrNoCurrentItem
	}
	if s.muted {
		return false, ErrMuted
	}
	if s.audio == nil {
		return false, nil
	}
	display := ws.RoleDisplay
	s.hub.Broadcast(ws.Audio(s.audio), &display)
	return true, nil
}

// AttachAudio caches rendered audio for the current call and fans it out to
// display viewers unless muted. It reports false when the call it was
// rendered for is no longer current.
func (s *Service) AttachAudio(number int, audio []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.Number != number {
		return false
	}
	s.audio = audio
	if !s.muted {
		display := ws.RoleDisplay
		s.hub.Broadcast(ws.Audio(audio), &display)
	}
	return true
}

// Connect registers the viewer and sends the four-message snapshot before
// the lock is released, so the snapshot reflects a single point in time and
// every later delta reaches the viewer in order.
func (s *Service) Connect(v *ws.Viewer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hub.Add(v)
	ok := s.hub.SendTo(v, ws.QueueUpdate(s.waitingCopyLocked()))
	if ok {
		ok = s.hub.SendTo(v, ws.Current(s.current))
	}
	if ok {
		ok = s.hub.SendTo(v, ws.History(s.historyViewLocked()))
	}
	if ok {
		s.hub.SendTo(v, ws.Status(s.hub.Len(), len(s.waiting), len(s.history), s.muted))
	}
	s.broadcastStatusLocked()
}

// Disconnect is idempotent.
func (s *Service) Disconnect(v *ws.Viewer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hub.Remove(v) {
		s.broadcastStatusLocked()
	}
}

func (s *Service) Waiting() []models.WaitingEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waitingCopyLocked()
}

func (s *Service) Current() *models.CalledEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	out := *s.current
	return &out
}

func (s *Service) History() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyViewLocked()
}

func (s *Service) broadcastStatusLocked() {
	s.hub.Broadcast(ws.Status(s.hub.Len(), len(s.waiting), len(s.history), s.muted), nil)
}

func (s *Service) waitingCopyLocked() []models.WaitingEntry {
	out := make([]models.WaitingEntry, len(s.waiting))
	copy(out, s.waiting)
	return out
}

func (s *Service) historyViewLocked() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(s.history))
	for i, entry := range s.history {
		out[i] = s.decorate(entry)
	}
	return out
}

func (s *Service) decorate(entry models.HistoryEntry) models.HistoryEntry {
	if entry.CompletedBy != "" && s.resolve != nil {
		if name, ok := s.resolve(entry.CompletedBy); ok {
			entry.CompletedByName = name
		}
	}
	return entry
}
