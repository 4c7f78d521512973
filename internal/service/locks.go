package service

import "sync"

// itemLocks serializes review recording per item id. Entries are kept for
// the life of the process; the map is bounded by the number of items ever
// reviewed through this instance.
type itemLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newItemLocks() *itemLocks {
	return &itemLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for id and returns the unlock function.
func (l *itemLocks) acquire(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
