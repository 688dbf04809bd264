package engine

import (
	"errors"
	"runtime"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/sirupsen/logrus"
)

// pebbleLevels is the number of LSM levels configured explicitly.
const pebbleLevels = 7

type Pebble struct {
	db     *pebble.DB
	syncer *syncer
}

func OpenPebble(dir string, opts Options) (*Pebble, error) {
	cache := pebble.NewCache(opts.CacheBytes)
	defer cache.Unref()

	compression := pebble.NoCompression
	if opts.Compression {
		compression = pebble.ZstdCompression
	}

	levels := make([]pebble.LevelOptions, pebbleLevels)
	for i := range levels {
		levels[i] = pebble.LevelOptions{
			TargetFileSize: (2 * 1024 * 1024) << i,
			FilterPolicy:   bloom.FilterPolicy(10),
			Compression:    compression,
		}
	}

	db, err := pebble.Open(dir, &pebble.Options{
		Cache:                    cache,
		MaxOpenFiles:             opts.MaxOpenFiles,
		MaxConcurrentCompactions: runtime.NumCPU,
		Levels:                   levels,
		Logger:                   pebbleLogger{logrus.StandardLogger()},
	})
	if err != nil {
		return nil, err
	}

	return &Pebble{
		db: db,
		syncer: startSyncer("pebble", opts.FlushInterval, func() error {
			return db.LogData(nil, pebble.Sync)
		}),
	}, nil
}

func (p *Pebble) Insert(key, value []byte) error {
	return p.db.Set(key, value, pebble.NoSync)
}

func (p *Pebble) Get(key []byte) ([]byte, bool, error) {
	v, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}
	defer closer.Close()

	return append([]byte(nil), v...), true, nil
}

func (p *Pebble) Flush() error {
	return p.db.Flush()
}

func (p *Pebble) Close() error {
	p.syncer.stop()

	return p.db.Close()
}

// pebbleLogger demotes pebble's chatty info lines (flushes, compactions) to debug.
type pebbleLogger struct {
	logrus.FieldLogger
}

func (l pebbleLogger) Infof(format string, args ...interface{}) {
	l.FieldLogger.Debugf(format, args...)
}
