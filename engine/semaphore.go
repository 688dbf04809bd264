package engine

// Semaphore implements a type used to limit concurrent operations.
type Semaphore struct {
	ch chan struct{}
}

// NewSemaphore constructs a new semaphore with the given limit.
func NewSemaphore(max int) *Semaphore {
	if max < 1 {
		max = 1
	}

	return &Semaphore{ch: make(chan struct{}, max)}
}

// Lock locks the semaphore, waiting first until it is possible.
func (sem *Semaphore) Lock() {
	sem.ch <- struct{}{}
}

// Unlock unlocks the semaphore.
func (sem *Semaphore) Unlock() {
	<-sem.ch
}

// Do executes the given function synchronously while holding the semaphore.
func (sem *Semaphore) Do(fn func() error) error {
	sem.Lock()
	defer sem.Unlock()

	return fn()
}
