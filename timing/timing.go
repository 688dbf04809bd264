package timing

import "time"

// Timer tracks the duration between invocations to Start and Stop.
type Timer struct {
	start time.Time
	end   time.Time
}

func (s *Timer) Start() {
	s.start = time.Now()
}

func (s *Timer) Stop() {
	s.end = time.Now()
}

func (s *Timer) Elapsed() time.Duration {
	return s.end.Sub(s.start)
}

// Measure times a single call to fn.
func Measure(fn func() error) (time.Duration, error) {
	var timer Timer

	timer.Start()
	err := fn()
	timer.Stop()

	return timer.Elapsed(), err
}
