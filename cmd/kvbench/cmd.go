package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ProtonMail/kvbench/bench"
	"github.com/ProtonMail/kvbench/logging"
	"github.com/ProtonMail/kvbench/reporter"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "kvbench",
		Short: "Concurrent throughput benchmark for key/value engines",
		Long: `kvbench inserts a fixed key space into one or more storage engines at
each configured concurrency level, reads it back at the same levels and reports
the throughput together with disk and memory usage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.SetLevel(verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newRunCmd(), newListCmd())

	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range bench.Names() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "  * %v\n", name); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

type runConfig struct {
	engines       []string
	path          string
	levels        []int
	ops           uint32
	cacheBytes    int64
	noCompression bool
	flushInterval time.Duration
	outputJSON    bool
	profile       string
}

func newRunCmd() *cobra.Command {
	defaults := bench.DefaultConfig()

	var cfg runConfig

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark the selected engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stopProfile, err := startProfile(cfg.profile)
			if err != nil {
				return err
			}
			defer stopProfile()

			var benchReporter reporter.BenchmarkReporter

			if cfg.outputJSON {
				benchReporter = reporter.NewJSONReporter(cmd.OutOrStdout())
			} else {
				benchReporter = reporter.NewTextReporter(cmd.OutOrStdout())
			}

			return runBenchmarks(cmd.Context(), cfg, benchReporter)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&cfg.engines, "engine", []string{"memory"},
		"Engines to benchmark (see list)")
	flags.StringVar(&cfg.path, "path", "",
		"Directory for engine data (default: a new temporary directory)")
	flags.IntSliceVar(&cfg.levels, "levels", defaults.Levels,
		"Concurrency levels, swept in the given order")
	flags.Uint32Var(&cfg.ops, "ops", defaults.OpsPerWorker,
		"Keys inserted by each worker")
	flags.Int64Var(&cfg.cacheBytes, "cache-bytes", defaults.Engine.CacheBytes,
		"Engine cache size in bytes")
	flags.BoolVar(&cfg.noCompression, "no-compression", false,
		"Disable engine compression")
	flags.DurationVar(&cfg.flushInterval, "flush-interval", defaults.Engine.FlushInterval,
		"Background flush interval (0 disables it)")
	flags.BoolVar(&cfg.outputJSON, "json", false,
		"Output results as JSON instead of text")
	flags.StringVar(&cfg.profile, "profile", "",
		"Profile the run: cpu or mem")

	return cmd
}

func startProfile(mode string) (func(), error) {
	switch mode {
	case "":
		return func() {}, nil

	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop, nil

	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop, nil

	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
}

func runBenchmarks(ctx context.Context, cfg runConfig, benchReporter reporter.BenchmarkReporter) error {
	runners := make([]bench.Runner, 0, len(cfg.engines))

	for _, name := range cfg.engines {
		runner, err := bench.Lookup(name)
		if err != nil {
			return err
		}

		runners = append(runners, runner)
	}

	var dirConfig bench.DirConfig

	if len(cfg.path) != 0 {
		dirConfig = bench.NewFixedDirConfig(cfg.path)
	} else {
		dirConfig = &bench.TmpDirConfig{}
	}

	root, err := dirConfig.Get()
	if err != nil {
		return fmt.Errorf("failed to get bench directory: %w", err)
	}

	benchCfg := bench.DefaultConfig()
	benchCfg.Levels = cfg.levels
	benchCfg.OpsPerWorker = cfg.ops
	benchCfg.Engine.CacheBytes = cfg.cacheBytes
	benchCfg.Engine.Compression = !cfg.noCompression
	benchCfg.Engine.FlushInterval = cfg.flushInterval

	reports := make([]*reporter.Report, 0, len(runners))

	for i, runner := range runners {
		name := cfg.engines[i]

		runCfg := benchCfg
		runCfg.Dir = filepath.Join(root, name)

		if err := os.MkdirAll(runCfg.Dir, 0o777); err != nil {
			return fmt.Errorf("failed to create engine directory '%v': %w", runCfg.Dir, err)
		}

		logrus.WithFields(logrus.Fields{
			"engine": name,
			"path":   runCfg.Dir,
			"levels": runCfg.Levels,
		}).Debug("Begin benchmark")

		report, err := runner(ctx, runCfg)
		if err != nil {
			return fmt.Errorf("benchmark %v: %w", name, err)
		}

		reports = append(reports, report)
	}

	return benchReporter.ProduceReport(reports)
}
