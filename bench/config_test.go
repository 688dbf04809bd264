package bench

import (
	"math"
	"testing"

	"github.com/ProtonMail/kvbench/lockstep"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) Config {
	cfg := DefaultConfig()
	cfg.Dir = t.TempDir()

	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, []int{4}, cfg.Levels)
	require.Equal(t, uint32(4096), cfg.OpsPerWorker)
	require.Equal(t, 4, cfg.MaxConcurrency())
	require.Equal(t, uint64(4*4096*8), cfg.RawDataBytes())
	require.NoError(t, validConfig(t).Validate())
}

func TestConfigValidate(t *testing.T) {
	noDir := validConfig(t)
	noDir.Dir = ""
	require.Error(t, noDir.Validate())

	noLevels := validConfig(t)
	noLevels.Levels = nil
	require.ErrorIs(t, noLevels.Validate(), ErrNoLevels)

	badLevel := validConfig(t)
	badLevel.Levels = []int{1, 0, 4}
	require.ErrorIs(t, badLevel.Validate(), lockstep.ErrInvalidConcurrency)

	noOps := validConfig(t)
	noOps.OpsPerWorker = 0
	require.Error(t, noOps.Validate())

	overflow := validConfig(t)
	overflow.Levels = []int{2}
	overflow.OpsPerWorker = math.MaxUint32/2 + 1
	require.ErrorIs(t, overflow.Validate(), ErrKeySpaceOverflow)

	edge := validConfig(t)
	edge.Levels = []int{1}
	edge.OpsPerWorker = math.MaxUint32
	require.NoError(t, edge.Validate())
}

func TestMaxConcurrencyIgnoresOrder(t *testing.T) {
	cfg := Config{Levels: []int{2, 8, 1}}

	require.Equal(t, 8, cfg.MaxConcurrency())
}
