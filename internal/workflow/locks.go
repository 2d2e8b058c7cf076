package workflow

import "sync"

// documentLocks hands out one mutex per document ID so commands touching the
// same document serialize while different documents proceed independently.
// Entries are reference counted and evicted once idle.
type documentLocks struct {
	mu    sync.Mutex
	locks map[int64]*documentLock
}

type documentLock struct {
	mu   sync.Mutex
	refs int
}

func newDocumentLocks() *documentLocks {
	return &documentLocks{locks: make(map[int64]*documentLock)}
}

func (l *documentLocks) acquire(id int64) *documentLock {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &documentLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return entry
}

func (l *documentLocks) release(id int64, entry *documentLock) {
	entry.mu.Unlock()

	l.mu.Lock()
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()
}

// withLock runs fn while holding the document's mutex.
func (m *Manager) withLock(id int64, fn func() error) error {
	entry := m.locks.acquire(id)
	defer m.locks.release(id, entry)
	return fn()
}
