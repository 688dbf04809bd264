package engine_test

import (
	"encoding/binary"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ProtonMail/kvbench/engine"
	"github.com/stretchr/testify/require"
)

func testOptions() engine.Options {
	return engine.Options{
		CacheBytes:       8 * 1024 * 1024,
		Compression:      true,
		CompressionLevel: 3,
		FlushInterval:    10 * time.Millisecond,
		MaxOpenFiles:     16,
		ExpectedKeys:     1024,
	}
}

func TestMemory(t *testing.T) {
	testEngine(t, engine.OpenMemory)
}

func TestDisk(t *testing.T) {
	testEngine(t, func(dir string, opts engine.Options) (*engine.Disk, error) {
		return engine.OpenDisk(dir, opts)
	})
}

func TestDiskZLib(t *testing.T) {
	testEngine(t, func(dir string, opts engine.Options) (*engine.Disk, error) {
		return engine.OpenDisk(dir, opts, engine.WithCompressor(engine.ZLibCompressor{Level: opts.CompressionLevel}))
	})
}

func TestBadger(t *testing.T) {
	testEngine(t, engine.OpenBadger)
}

func TestPebble(t *testing.T) {
	testEngine(t, engine.OpenPebble)
}

func TestLevelDB(t *testing.T) {
	testEngine(t, engine.OpenLevelDB)
}

func TestSQLite(t *testing.T) {
	testEngine(t, engine.OpenSQLite)
}

func testEngine[E engine.Engine](t *testing.T, open engine.Opener[E]) {
	for _, compression := range []bool{true, false} {
		t.Run(fmt.Sprintf("compression=%v", compression), func(t *testing.T) {
			opts := testOptions()
			opts.Compression = compression

			e, err := open(t.TempDir(), opts)
			require.NoError(t, err)

			testInsertGet(t, e)
			testConcurrentInsertGet(t, e)

			require.NoError(t, e.Close())
		})
	}
}

func testInsertGet(t *testing.T, e engine.Engine) {
	require.NoError(t, e.Insert([]byte("abc"), []byte("defghi")))
	require.NoError(t, e.Insert([]byte{1, 2, 3}, []byte{4, 5, 6}))

	value, ok, err := e.Get([]byte("abc"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("defghi"), value)

	value, ok, err = e.Get([]byte{1, 2, 3})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte{4, 5, 6}, value)

	// Missing keys are not an error.
	value, ok, err = e.Get([]byte{7, 8, 9})
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, value)

	// Overwrites replace the previous value.
	require.NoError(t, e.Insert([]byte{1, 2, 3}, []byte{1}))

	value, ok, err = e.Get([]byte{1, 2, 3})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte{1}, value)

	require.NoError(t, e.Flush())
}

func testConcurrentInsertGet(t *testing.T, e engine.Engine) {
	const (
		workers   = 4
		perWorker = 64
	)

	key := func(i int) []byte {
		return binary.BigEndian.AppendUint32(nil, uint32(1000+i))
	}

	var wg sync.WaitGroup

	errCh := make(chan error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			for i := w * perWorker; i < (w+1)*perWorker; i++ {
				if err := e.Insert(key(i), key(i)); err != nil {
					errCh <- err
					return
				}
			}
		}(w)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	require.NoError(t, e.Flush())

	for i := 0; i < workers*perWorker; i++ {
		value, ok, err := e.Get(key(i))
		require.NoError(t, err)
		require.True(t, ok, "key %d missing", i)
		require.Equal(t, key(i), value)
	}
}

func TestMemoryLen(t *testing.T) {
	m := engine.NewMemory()

	require.NoError(t, m.Insert([]byte{1}, []byte{1}))
	require.NoError(t, m.Insert([]byte{2}, []byte{2}))
	require.NoError(t, m.Insert([]byte{1}, []byte{3}))
	require.Equal(t, 2, m.Len())

	require.NoError(t, m.Close())
	require.Equal(t, 0, m.Len())
}

func TestMemoryCopiesInput(t *testing.T) {
	m := engine.NewMemory()

	key := []byte{1}
	value := []byte{2}

	require.NoError(t, m.Insert(key, value))

	key[0], value[0] = 9, 9

	got, ok, err := m.Get([]byte{1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte{2}, got)
}
