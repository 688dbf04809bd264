package bench

import (
	"context"
	"fmt"

	"github.com/ProtonMail/kvbench/engine"
	"github.com/ProtonMail/kvbench/reporter"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Runner runs the benchmark against one engine.
type Runner func(ctx context.Context, cfg Config, opts ...Option) (*reporter.Report, error)

// For returns a runner benchmarking the engines produced by open.
func For[E engine.Engine](name string, open engine.Opener[E]) Runner {
	return func(ctx context.Context, cfg Config, opts ...Option) (*reporter.Report, error) {
		return Run(ctx, name, open, cfg, opts...)
	}
}

var runners = make(map[string]Runner)

func Register(name string, runner Runner) {
	if _, ok := runners[name]; ok {
		panic("Engine with this name already exists")
	}

	runners[name] = runner
}

func Lookup(name string) (Runner, error) {
	runner, ok := runners[name]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownEngine, name)
	}

	return runner, nil
}

// Names returns the registered engine names in sorted order.
func Names() []string {
	names := maps.Keys(runners)

	slices.Sort(names)

	return names
}
