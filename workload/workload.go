// Package workload produces the per-worker states and workload functions run
// by the lockstep coordinator.
//
// Keys are fixed-width big-endian uint32 values. Inserting workers own
// disjoint key ranges; reading workers all scan the whole inserted key space.
package workload

import (
	"encoding/binary"
	"fmt"

	"github.com/ProtonMail/kvbench/engine"
)

// KeySize is the width of every generated key in bytes.
const KeySize = 4

// Key encodes i as a fixed-width big-endian key.
func Key(i uint32) []byte {
	return binary.BigEndian.AppendUint32(make([]byte, 0, KeySize), i)
}

// Partition returns the half-open key range owned by the worker at offset when
// each worker inserts k keys.
func Partition(offset, k uint32) (start, end uint32) {
	return offset * k, (offset + 1) * k
}

type InsertState[E engine.Engine] struct {
	Engine E
	Offset uint32
}

// InsertFactory returns a factory handing out offsets 0, 1, 2, ... on
// successive calls. Use a fresh factory per measurement.
func InsertFactory[E engine.Engine](e E) func() InsertState[E] {
	var next uint32

	return func() InsertState[E] {
		state := InsertState[E]{Engine: e, Offset: next}
		next++

		return state
	}
}

// Insert returns a workload writing the k keys of the worker's partition, each
// with its own key bytes as the value.
func Insert[E engine.Engine](k uint32) func(InsertState[E]) error {
	return func(state InsertState[E]) error {
		start, end := Partition(state.Offset, k)

		for i := start; i < end; i++ {
			key := Key(i)

			if err := state.Engine.Insert(key, key); err != nil {
				return fmt.Errorf("insert key %d: %w", i, err)
			}
		}

		return nil
	}
}

// ReadResult counts one reading worker's lookups.
type ReadResult struct {
	Hits   uint64
	Misses uint64
}

type ReadState[E engine.Engine] struct {
	Engine E
	Result *ReadResult
}

// Tally collects the results of every state a read factory produced.
type Tally struct {
	results []*ReadResult
}

// Sum adds up all worker results. Call it only after the workers have joined.
func (t *Tally) Sum() ReadResult {
	var sum ReadResult

	for _, r := range t.results {
		sum.Hits += r.Hits
		sum.Misses += r.Misses
	}

	return sum
}

// ReadFactory returns a factory of read states sharing e, and the tally their
// results are recorded in.
func ReadFactory[E engine.Engine](e E) (func() ReadState[E], *Tally) {
	tally := &Tally{}

	return func() ReadState[E] {
		result := &ReadResult{}
		tally.results = append(tally.results, result)

		return ReadState[E]{Engine: e, Result: result}
	}, tally
}

// Read returns a workload looking up every key in [0, total). Every worker
// scans the full range regardless of how many workers run. Absent keys are
// counted as misses.
func Read[E engine.Engine](total uint32) func(ReadState[E]) error {
	return func(state ReadState[E]) error {
		var hits, misses uint64

		for i := uint32(0); i < total; i++ {
			_, ok, err := state.Engine.Get(Key(i))
			if err != nil {
				return fmt.Errorf("get key %d: %w", i, err)
			}

			if ok {
				hits++
			} else {
				misses++
			}
		}

		state.Result.Hits = hits
		state.Result.Misses = misses

		return nil
	}
}
