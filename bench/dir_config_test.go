package bench_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/kvbench/bench"
	"github.com/stretchr/testify/require"
)

func TestFixedDirConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")

	dir, err := bench.NewFixedDirConfig(path).Get()
	require.NoError(t, err)
	require.Equal(t, path, dir)
	require.DirExists(t, dir)
}

func TestTmpDirConfig(t *testing.T) {
	cfg := &bench.TmpDirConfig{}

	first, err := cfg.Get()
	require.NoError(t, err)

	defer os.RemoveAll(first)

	second, err := cfg.Get()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.DirExists(t, first)
}
