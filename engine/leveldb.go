package engine

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type LevelDB struct {
	db *leveldb.DB
}

func OpenLevelDB(dir string, opts Options) (*LevelDB, error) {
	compression := opt.NoCompression
	if opts.Compression {
		compression = opt.SnappyCompression
	}

	db, err := leveldb.OpenFile(dir, &opt.Options{
		BlockCacheCapacity:     int(opts.CacheBytes),
		Compression:            compression,
		OpenFilesCacheCapacity: opts.MaxOpenFiles,
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, err
	}

	return &LevelDB{db: db}, nil
}

func (l *LevelDB) Insert(key, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *LevelDB) Get(key []byte) ([]byte, bool, error) {
	value, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return value, true, nil
}

// Flush has no direct goleveldb equivalent; compacting the whole key space
// pushes the memtable into sorted tables on disk.
func (l *LevelDB) Flush() error {
	return l.db.CompactRange(util.Range{})
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}
