package lockstep

import "sync"

// Barrier is a single-use rendezvous point for a fixed number of parties.
type Barrier struct {
	lock    sync.Mutex
	parties int
	arrived int
	done    bool
	broken  bool
	release chan struct{}
}

func NewBarrier(parties int) *Barrier {
	return &Barrier{
		parties: parties,
		release: make(chan struct{}),
	}
}

// Wait blocks until every party has called Wait, or until the barrier is broken.
// It reports whether the rendezvous completed.
func (b *Barrier) Wait() bool {
	b.lock.Lock()

	b.arrived++

	if b.arrived >= b.parties && !b.done {
		b.done = true
		close(b.release)
	}

	b.lock.Unlock()

	<-b.release

	b.lock.Lock()
	defer b.lock.Unlock()

	return !b.broken
}

// Break releases all current and future waiters without completing the rendezvous.
// It has no effect once the rendezvous completed.
func (b *Barrier) Break() {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.done {
		return
	}

	b.done = true
	b.broken = true
	close(b.release)
}
