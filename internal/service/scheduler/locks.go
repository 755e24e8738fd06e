package scheduler

import (
	"sync"

	"github.com/google/uuid"
)

// userLocks serializes plan mutations per user. Two concurrent requests
// for the same user take turns; requests for different users proceed in
// parallel. Entries are never evicted: one mutex per active user is a
// negligible footprint for this workload.
type userLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// lock acquires the mutex for the given user and returns its unlock
// function.
func (l *userLocks) lock(userID uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
