package engine

import (
	"sync"
)

type syncRef struct {
	lock    sync.RWMutex
	counter int32
}

// keyLocks hands out a reader/writer lock per key so one key can be read by
// many workers while at most one writes it. Unused locks are pooled.
type keyLocks struct {
	lock       sync.Mutex
	entryTable map[string]*syncRef
	lockPool   []*syncRef
}

func newKeyLocks() *keyLocks {
	return &keyLocks{entryTable: make(map[string]*syncRef)}
}

func (k *keyLocks) acquire(key string) *syncRef {
	k.lock.Lock()
	defer k.lock.Unlock()

	v, ok := k.entryTable[key]
	if !ok {
		var s *syncRef

		if n := len(k.lockPool); n != 0 {
			s = k.lockPool[n-1]
			s.counter = 1
			k.lockPool = k.lockPool[:n-1]
		} else {
			s = &syncRef{counter: 1}
		}

		k.entryTable[key] = s

		return s
	}

	v.counter++

	return v
}

func (k *keyLocks) release(key string, ref *syncRef) {
	k.lock.Lock()
	defer k.lock.Unlock()

	ref.counter--

	if ref.counter <= 0 {
		delete(k.entryTable, key)
		k.lockPool = append(k.lockPool, ref)
	}
}

func (k *keyLocks) read(key string, fn func() error) error {
	ref := k.acquire(key)
	defer k.release(key, ref)

	ref.lock.RLock()
	defer ref.lock.RUnlock()

	return fn()
}

func (k *keyLocks) write(key string, fn func() error) error {
	ref := k.acquire(key)
	defer k.release(key, ref)

	ref.lock.Lock()
	defer ref.lock.Unlock()

	return fn()
}

// size returns the number of keys currently holding a lock.
func (k *keyLocks) size() int {
	k.lock.Lock()
	defer k.lock.Unlock()

	return len(k.entryTable)
}
