// Package alloc exposes process-wide memory counters to the benchmark harness.
//
// The counters are running totals for the whole process; they are never reset
// during a run.
package alloc

import "runtime"

// Counter reports process-wide allocation totals in bytes.
type Counter interface {
	Allocated() uint64
	Freed() uint64
	Resident() uint64
}

// Noop reports zero for every counter.
type Noop struct{}

func (Noop) Allocated() uint64 { return 0 }

func (Noop) Freed() uint64 { return 0 }

func (Noop) Resident() uint64 { return 0 }

// Runtime reads the Go runtime's heap statistics.
//
// Allocated is the cumulative bytes allocated for heap objects, Freed is the
// part of that which has since been released, and Resident is the memory
// obtained from the OS minus what the heap has returned to it.
type Runtime struct{}

func (Runtime) Allocated() uint64 {
	return readMemStats().TotalAlloc
}

func (Runtime) Freed() uint64 {
	m := readMemStats()

	return m.TotalAlloc - m.HeapAlloc
}

func (Runtime) Resident() uint64 {
	m := readMemStats()

	return m.Sys - m.HeapReleased
}

func readMemStats() *runtime.MemStats {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)

	return &m
}
