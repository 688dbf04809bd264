// Package reporter aggregates benchmark measurements into a report and renders it.
package reporter

import (
	"time"

	"github.com/bradenaw/juniper/xslices"
)

// InsertStat is the insert throughput measured at one concurrency level.
type InsertStat struct {
	Threads      int           `json:"threads"`
	OpsPerSecond uint64        `json:"ops_per_second"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	Flush        time.Duration `json:"flush_ns"`
}

// ReadStat is the read throughput measured at one concurrency level.
type ReadStat struct {
	Threads      int           `json:"threads"`
	OpsPerSecond uint64        `json:"ops_per_second"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	Misses       uint64        `json:"misses"`
}

// ResourceSnapshot is the resource usage captured after both sweeps.
type ResourceSnapshot struct {
	DiskBytes      uint64 `json:"disk_bytes"`
	AllocatedBytes uint64 `json:"allocated_bytes"`
	FreedBytes     uint64 `json:"freed_bytes"`
	ResidentBytes  uint64 `json:"resident_bytes"`
}

// Report holds the results of one benchmark run. Stats are kept in the order
// the concurrency levels were swept.
type Report struct {
	Engine       string           `json:"engine"`
	RunID        string           `json:"run_id"`
	RawDataBytes uint64           `json:"raw_data_bytes"`
	FinalFlush   time.Duration    `json:"final_flush_ns"`
	Inserts      []InsertStat     `json:"inserts"`
	Reads        []ReadStat       `json:"reads"`
	Resources    ResourceSnapshot `json:"resources"`
}

// Levels returns the swept concurrency levels in sweep order.
func (r *Report) Levels() []int {
	return xslices.Map(r.Inserts, func(s InsertStat) int {
		return s.Threads
	})
}

// Throughput returns ops per second for ops completed within elapsed.
// The divisor is clamped to one microsecond.
func Throughput(ops uint64, elapsed time.Duration) uint64 {
	micros := uint64(elapsed.Microseconds())
	if micros < 1 {
		micros = 1
	}

	return ops * 1_000_000 / micros
}

// BenchmarkReporter is the interface that is required to be implemented by any report generation tool.
type BenchmarkReporter interface {
	ProduceReport(reports []*Report) error
}
