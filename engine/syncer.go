package engine

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// syncer periodically calls fn until stopped.
type syncer struct {
	name   string
	fn     func() error
	exitCh chan struct{}
	wg     sync.WaitGroup
}

func startSyncer(name string, interval time.Duration, fn func() error) *syncer {
	s := &syncer{
		name:   name,
		fn:     fn,
		exitCh: make(chan struct{}),
	}

	if interval <= 0 {
		return s
	}

	s.wg.Add(1)

	go s.run(interval)

	return s
}

func (s *syncer) run(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.fn(); err != nil {
				logrus.WithError(err).WithField("engine", s.name).Warn("Background sync failed")
			}

		case <-s.exitCh:
			return
		}
	}
}

// stop blocks until the background goroutine, if any, has exited.
func (s *syncer) stop() {
	close(s.exitCh)
	s.wg.Wait()
}
