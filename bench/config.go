package bench

import (
	"errors"
	"fmt"
	"math"

	"github.com/ProtonMail/kvbench/engine"
	"github.com/ProtonMail/kvbench/lockstep"
	"github.com/ProtonMail/kvbench/workload"
	"golang.org/x/exp/slices"
)

var (
	ErrNoLevels         = errors.New("no concurrency levels configured")
	ErrKeySpaceOverflow = errors.New("key space does not fit in 32-bit keys")
	ErrUnknownEngine    = errors.New("unknown engine")
)

// Config describes one benchmark run.
type Config struct {
	// Dir is the engine data directory. It is scanned for the disk usage snapshot.
	Dir string

	// Levels are the worker counts, swept in the given order by both sweeps.
	Levels []int

	// OpsPerWorker is the number of keys each inserting worker writes.
	OpsPerWorker uint32

	Engine engine.Options
}

func DefaultConfig() Config {
	return Config{
		Levels:       []int{4},
		OpsPerWorker: 4 * 1024,
		Engine:       engine.DefaultOptions(),
	}
}

func (c Config) Validate() error {
	if len(c.Dir) == 0 {
		return errors.New("no data directory configured")
	}

	if len(c.Levels) == 0 {
		return ErrNoLevels
	}

	if idx := slices.IndexFunc(c.Levels, func(l int) bool { return l < 1 }); idx >= 0 {
		return fmt.Errorf("level %d: %w", c.Levels[idx], lockstep.ErrInvalidConcurrency)
	}

	if c.OpsPerWorker == 0 {
		return errors.New("ops per worker must be positive")
	}

	if c.KeySpace() > math.MaxUint32 {
		return fmt.Errorf("%d workers x %d ops: %w", c.MaxConcurrency(), c.OpsPerWorker, ErrKeySpaceOverflow)
	}

	return nil
}

// MaxConcurrency returns the largest configured level.
func (c Config) MaxConcurrency() int {
	var highest int

	for _, l := range c.Levels {
		if l > highest {
			highest = l
		}
	}

	return highest
}

// KeySpace returns the number of distinct keys the largest insert level writes.
func (c Config) KeySpace() uint64 {
	return uint64(c.OpsPerWorker) * uint64(c.MaxConcurrency())
}

// RawDataBytes returns the size of the inserted keys and values without engine overhead.
// Every value is a copy of its key.
func (c Config) RawDataBytes() uint64 {
	return c.KeySpace() * 2 * workload.KeySize
}
