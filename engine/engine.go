package engine

import (
	"time"
)

// Engine is the capability set the harness needs from a storage engine.
// Every method must be safe for concurrent use; the harness never locks
// around engine calls.
type Engine interface {
	// Insert stores value under key.
	Insert(key, value []byte) error

	// Get returns the value stored under key. A missing key is reported with
	// ok set to false and a nil error.
	Get(key []byte) (value []byte, ok bool, err error)

	// Flush forces buffered writes to durable storage.
	Flush() error

	Close() error
}

// Opener constructs a new engine rooted at dir, tuned with opts.
type Opener[E Engine] func(dir string, opts Options) (E, error)

// Options holds the tuning knobs shared by all engines. Engines ignore the
// knobs they have no equivalent for.
type Options struct {
	// CacheBytes is the size of the engine's block/page cache.
	CacheBytes int64

	// Compression enables on-disk value compression.
	Compression bool

	// CompressionLevel is used by codecs that support levels (zstd, zlib).
	CompressionLevel int

	// FlushInterval is the period of background syncs, zero disables them.
	FlushInterval time.Duration

	// MaxOpenFiles bounds concurrent file handles.
	MaxOpenFiles int

	// ExpectedKeys sizes probabilistic structures such as bloom filters.
	ExpectedKeys uint
}

// DefaultOptions returns the tuning used for benchmark runs.
func DefaultOptions() Options {
	return Options{
		CacheBytes:       1024 * 1024 * 1024,
		Compression:      true,
		CompressionLevel: 3,
		FlushInterval:    200 * time.Millisecond,
		MaxOpenFiles:     64,
		ExpectedKeys:     1 << 20,
	}
}
