package bench

import (
	"context"
	"fmt"

	"github.com/ProtonMail/kvbench/engine"
	"github.com/ProtonMail/kvbench/internal/du"
	"github.com/ProtonMail/kvbench/lockstep"
	"github.com/ProtonMail/kvbench/reporter"
	"github.com/ProtonMail/kvbench/timing"
	"github.com/ProtonMail/kvbench/workload"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Run opens the engine in cfg.Dir, sweeps inserts and then reads over cfg.Levels,
// and returns the report. Any failure aborts the run and no report is returned.
// The context is only checked between stages.
func Run[E engine.Engine](ctx context.Context, name string, open engine.Opener[E], cfg Config, opts ...Option) (*reporter.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := newSettings(opts)

	log := s.log.WithField("engine", name)

	e, err := open(cfg.Dir, cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("open %v: %w", name, err)
	}

	report, err := run(ctx, log, e, cfg, s)
	if err != nil {
		if closeErr := e.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close engine after failed run")
		}

		return nil, err
	}

	if err := e.Close(); err != nil {
		return nil, fmt.Errorf("close %v: %w", name, err)
	}

	report.Engine = name

	return report, nil
}

func run[E engine.Engine](ctx context.Context, log logrus.FieldLogger, e E, cfg Config, s *settings) (*reporter.Report, error) {
	report := &reporter.Report{
		RunID:        uuid.NewString(),
		RawDataBytes: cfg.RawDataBytes(),
	}

	log = log.WithField("run", report.RunID)

	inserts, err := insertSweep(ctx, log, e, cfg)
	if err != nil {
		return nil, err
	}

	report.Inserts = inserts

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	finalFlush, err := timing.Measure(e.Flush)
	if err != nil {
		return nil, fmt.Errorf("final flush: %w", err)
	}

	log.WithField("duration", finalFlush).Info("Final flush complete")

	report.FinalFlush = finalFlush

	reads, err := readSweep(ctx, log, e, cfg)
	if err != nil {
		return nil, err
	}

	report.Reads = reads

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	disk, err := du.Size(cfg.Dir)
	if err != nil {
		return nil, err
	}

	report.Resources = reporter.ResourceSnapshot{
		DiskBytes:      disk,
		AllocatedBytes: s.counter.Allocated(),
		FreedBytes:     s.counter.Freed(),
		ResidentBytes:  s.counter.Resident(),
	}

	return report, nil
}

func insertSweep[E engine.Engine](ctx context.Context, log logrus.FieldLogger, e E, cfg Config) ([]reporter.InsertStat, error) {
	stats := make([]reporter.InsertStat, 0, len(cfg.Levels))

	for _, level := range cfg.Levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		elapsed, err := lockstep.Execute(level, workload.InsertFactory(e), workload.Insert[E](cfg.OpsPerWorker))
		if err != nil {
			return nil, fmt.Errorf("insert with %d threads: %w", level, err)
		}

		flush, err := timing.Measure(e.Flush)
		if err != nil {
			return nil, fmt.Errorf("flush after %d threads: %w", level, err)
		}

		stat := reporter.InsertStat{
			Threads:      level,
			OpsPerSecond: reporter.Throughput(uint64(level)*uint64(cfg.OpsPerWorker), elapsed),
			Elapsed:      elapsed,
			Flush:        flush,
		}

		log.WithFields(logrus.Fields{
			"threads":        stat.Threads,
			"ops_per_second": stat.OpsPerSecond,
			"elapsed":        stat.Elapsed,
			"flush":          stat.Flush,
		}).Info("Insert level complete")

		stats = append(stats, stat)
	}

	return stats, nil
}

func readSweep[E engine.Engine](ctx context.Context, log logrus.FieldLogger, e E, cfg Config) ([]reporter.ReadStat, error) {
	stats := make([]reporter.ReadStat, 0, len(cfg.Levels))

	// Every worker scans the whole key space, so total reads grow with the level.
	total := uint32(cfg.KeySpace())

	for _, level := range cfg.Levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		factory, tally := workload.ReadFactory(e)

		elapsed, err := lockstep.Execute(level, factory, workload.Read[E](total))
		if err != nil {
			return nil, fmt.Errorf("read with %d threads: %w", level, err)
		}

		result := tally.Sum()

		stat := reporter.ReadStat{
			Threads:      level,
			OpsPerSecond: reporter.Throughput(uint64(level)*uint64(total), elapsed),
			Elapsed:      elapsed,
			Misses:       result.Misses,
		}

		entry := log.WithFields(logrus.Fields{
			"threads":        stat.Threads,
			"ops_per_second": stat.OpsPerSecond,
			"elapsed":        stat.Elapsed,
		})

		if stat.Misses > 0 {
			entry.WithField("misses", stat.Misses).Warn("Read level complete with missing keys")
		} else {
			entry.Info("Read level complete")
		}

		stats = append(stats, stat)
	}

	return stats, nil
}
