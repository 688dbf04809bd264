package bench_test

import (
	"context"
	"testing"

	"github.com/ProtonMail/kvbench/bench"
	"github.com/ProtonMail/kvbench/engine"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	bench.Register("registry-b", bench.For("registry-b", engine.OpenMemory))
	bench.Register("registry-a", bench.For("registry-a", engine.OpenMemory))

	names := bench.Names()
	require.Subset(t, names, []string{"registry-a", "registry-b"})
	require.IsIncreasing(t, names)

	runner, err := bench.Lookup("registry-a")
	require.NoError(t, err)

	report, err := runner(context.Background(), testConfig(t, 1), quietLogger())
	require.NoError(t, err)
	require.Equal(t, "registry-a", report.Engine)
}

func TestRegisterDuplicate(t *testing.T) {
	bench.Register("registry-dup", bench.For("registry-dup", engine.OpenMemory))

	require.Panics(t, func() {
		bench.Register("registry-dup", bench.For("registry-dup", engine.OpenMemory))
	})
}

func TestLookupUnknown(t *testing.T) {
	_, err := bench.Lookup("no-such-engine")
	require.ErrorIs(t, err, bench.ErrUnknownEngine)
}
