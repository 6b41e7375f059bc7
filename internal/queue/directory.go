package queue

import "sync"

// Directory maps opaque operator ids to display names. Last write wins, no
// expiry. It only decorates outgoing history payloads; a missing mapping is
// not an error.
type Directory struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewDirectory() *Directory {
	return &Directory{names: map[string]string{}}
}

func (d *Directory) Register(id string, name string) {
	d.mu.Lock()
	d.names[id] = name
	d.mu.Unlock()
}

func (d *Directory) Resolve(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.names[id]
	return name, ok
}
