package engine

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskWritesOneFilePerKey(t *testing.T) {
	dir := t.TempDir()

	d, err := NewDisk(dir, 16)
	require.NoError(t, err)

	require.NoError(t, d.Insert([]byte{0, 0, 0, 1}, []byte("one")))
	require.NoError(t, d.Insert([]byte{0, 0, 0, 2}, []byte("two")))

	b, err := os.ReadFile(filepath.Join(dir, hex.EncodeToString([]byte{0, 0, 0, 1})))
	require.NoError(t, err)
	require.Equal(t, []byte("one"), b)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.NoError(t, d.Flush())
}

func TestDiskCompressedOnDisk(t *testing.T) {
	dir := t.TempDir()

	d, err := NewDisk(dir, 16, WithCompressor(SnappyCompressor{}))
	require.NoError(t, err)

	value := make([]byte, 4096)

	require.NoError(t, d.Insert([]byte("k"), value))

	info, err := os.Stat(filepath.Join(dir, hex.EncodeToString([]byte("k"))))
	require.NoError(t, err)
	require.Less(t, info.Size(), int64(len(value)))

	got, ok, err := d.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, value, got)
}

func TestDiskMissingFileIsAbsent(t *testing.T) {
	dir := t.TempDir()

	d, err := NewDisk(dir, 16)
	require.NoError(t, err)

	require.NoError(t, d.Insert([]byte("k"), []byte("v")))
	require.NoError(t, os.Remove(filepath.Join(dir, hex.EncodeToString([]byte("k")))))

	// The bloom filter still claims the key; the missing file settles it.
	_, ok, err := d.Get([]byte("k"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSemaphoreLimitsConcurrency(t *testing.T) {
	const limit = 3

	sem := NewSemaphore(limit)

	var (
		wg      sync.WaitGroup
		running int32
		peak    int32
	)

	for i := 0; i < 32; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			assert.NoError(t, sem.Do(func() error {
				n := atomic.AddInt32(&running, 1)
				defer atomic.AddInt32(&running, -1)

				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}

				return nil
			}))
		}()
	}

	wg.Wait()

	require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(limit))
	require.Zero(t, atomic.LoadInt32(&running))
}

func TestKeyLocksArePooled(t *testing.T) {
	locks := newKeyLocks()

	require.NoError(t, locks.write("a", func() error {
		require.Equal(t, 1, locks.size())

		return locks.read("b", func() error {
			require.Equal(t, 2, locks.size())
			return nil
		})
	}))

	require.Zero(t, locks.size())
	require.Len(t, locks.lockPool, 2)

	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_ = locks.read("a", func() error { return nil })
		}()
	}

	wg.Wait()

	require.Zero(t, locks.size())
}

func TestCompressorsRoundTrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox")

	for name, cmp := range map[string]Compressor{
		"snappy":       SnappyCompressor{},
		"zlib":         ZLibCompressor{},
		"zlib-level-9": ZLibCompressor{Level: 9},
	} {
		t.Run(name, func(t *testing.T) {
			enc, err := cmp.Compress(data)
			require.NoError(t, err)

			dec, err := cmp.Decompress(enc)
			require.NoError(t, err)
			require.Equal(t, data, dec)
		})
	}
}
