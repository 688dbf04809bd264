// Package main provides the CLI entry point for kvbench, a concurrent
// throughput benchmark for key/value engines.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("Benchmark failed")
		stop()
		os.Exit(1)
	}
}
