package bench

import (
	"github.com/ProtonMail/kvbench/alloc"
	"github.com/sirupsen/logrus"
)

// Option represents a type that can be used to configure a benchmark run.
type Option interface {
	config(*settings)
}

type settings struct {
	log     logrus.FieldLogger
	counter alloc.Counter
}

func newSettings(opts []Option) *settings {
	s := &settings{
		log:     logrus.StandardLogger(),
		counter: alloc.Default(),
	}

	for _, opt := range opts {
		opt.config(s)
	}

	return s
}

// WithLogger instructs the run to log its progress to the given logger.
func WithLogger(log logrus.FieldLogger) Option {
	return &withLogger{
		log: log,
	}
}

type withLogger struct {
	log logrus.FieldLogger
}

func (opt withLogger) config(s *settings) {
	s.log = opt.log
}

// WithCounter instructs the run to take its memory snapshot from the given counter.
func WithCounter(counter alloc.Counter) Option {
	return &withCounter{
		counter: counter,
	}
}

type withCounter struct {
	counter alloc.Counter
}

func (opt withCounter) config(s *settings) {
	s.counter = opt.counter
}
