package engine

import (
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/sirupsen/logrus"
)

type Badger struct {
	db     *badger.DB
	syncer *syncer
}

func OpenBadger(dir string, opts Options) (*Badger, error) {
	bopts := badger.DefaultOptions(dir).
		WithLogger(logrus.StandardLogger()).
		WithLoggingLevel(badger.ERROR).
		WithBlockCacheSize(opts.CacheBytes).
		WithIndexCacheSize(128 * 1024 * 1024)

	if opts.Compression {
		bopts = bopts.
			WithCompression(options.ZSTD).
			WithZSTDCompressionLevel(opts.CompressionLevel)
	} else {
		bopts = bopts.WithCompression(options.None)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}

	return &Badger{
		db:     db,
		syncer: startSyncer("badger", opts.FlushInterval, db.Sync),
	}, nil
}

func (b *Badger) Insert(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (b *Badger) Get(key []byte) ([]byte, bool, error) {
	var value []byte

	if err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(nil)

		return err
	}); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return value, true, nil
}

func (b *Badger) Flush() error {
	return b.db.Sync()
}

func (b *Badger) Close() error {
	b.syncer.stop()

	return b.db.Close()
}
