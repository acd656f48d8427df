package socket

import "sync"

// roomLocks hands out one mutex per chat room so append-then-broadcast
// is serialized within a room while different rooms stay independent.
// Entries are reference-counted and evicted once a room goes idle.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*roomLock
}

type roomLock struct {
	sync.Mutex
	refs int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: map[string]*roomLock{}}
}

// acquire blocks until the caller holds the room's lock
func (rl *roomLocks) acquire(chatID string) *roomLock {
	rl.mu.Lock()
	lock, ok := rl.locks[chatID]
	if !ok {
		lock = &roomLock{}
		rl.locks[chatID] = lock
	}
	lock.refs++
	rl.mu.Unlock()

	lock.Lock()
	return lock
}

// release unlocks the room, dropping the entry with its last holder
func (rl *roomLocks) release(chatID string, lock *roomLock) {
	lock.Unlock()
	rl.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(rl.locks, chatID)
	}
	rl.mu.Unlock()
}

func (rl *roomLocks) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.locks)
}
