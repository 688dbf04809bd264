package engine

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const diskFalsePositiveRate = 0.01

// Disk stores every pair in its own file named after the hex-encoded key.
// A bloom filter of inserted keys answers most misses without touching disk.
type Disk struct {
	path  string
	cmp   Compressor
	sem   *Semaphore
	locks *keyLocks

	filter     *bloom.BloomFilter
	filterLock sync.RWMutex
}

// DiskOption configures a Disk engine.
type DiskOption interface {
	config(*Disk)
}

func WithCompressor(cmp Compressor) DiskOption {
	return &withCmp{
		cmp: cmp,
	}
}

type withCmp struct {
	cmp Compressor
}

func (opt withCmp) config(store *Disk) {
	store.cmp = opt.cmp
}

func WithSemaphore(sem *Semaphore) DiskOption {
	return &withSem{
		sem: sem,
	}
}

type withSem struct {
	sem *Semaphore
}

func (opt withSem) config(store *Disk) {
	store.sem = opt.sem
}

// OpenDisk opens a Disk engine with a snappy compressor when compression is
// enabled and file handles bounded by MaxOpenFiles. Explicit options win.
func OpenDisk(dir string, opts Options, opt ...DiskOption) (*Disk, error) {
	defaults := []DiskOption{WithSemaphore(NewSemaphore(opts.MaxOpenFiles))}

	if opts.Compression {
		defaults = append(defaults, WithCompressor(SnappyCompressor{}))
	}

	return NewDisk(dir, opts.ExpectedKeys, append(defaults, opt...)...)
}

func NewDisk(path string, expectedKeys uint, opt ...DiskOption) (*Disk, error) {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, err
	}

	if expectedKeys == 0 {
		expectedKeys = 1
	}

	store := &Disk{
		path:   path,
		locks:  newKeyLocks(),
		filter: bloom.NewWithEstimates(expectedKeys, diskFalsePositiveRate),
	}

	for _, opt := range opt {
		opt.config(store)
	}

	return store, nil
}

func (d *Disk) Insert(key, value []byte) error {
	name := hex.EncodeToString(key)

	if d.cmp != nil {
		enc, err := d.cmp.Compress(value)
		if err != nil {
			return err
		}

		value = enc
	}

	if err := d.locks.write(name, func() error {
		return d.withFile(func() error {
			return os.WriteFile(filepath.Join(d.path, name), value, 0o600)
		})
	}); err != nil {
		return err
	}

	d.filterLock.Lock()
	defer d.filterLock.Unlock()

	d.filter.Add(key)

	return nil
}

func (d *Disk) Get(key []byte) ([]byte, bool, error) {
	if !d.mayContain(key) {
		return nil, false, nil
	}

	name := hex.EncodeToString(key)

	var b []byte

	if err := d.locks.read(name, func() error {
		return d.withFile(func() error {
			data, err := os.ReadFile(filepath.Join(d.path, name))
			if err != nil {
				return err
			}

			b = data

			return nil
		})
	}); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, err
	}

	if d.cmp != nil {
		dec, err := d.cmp.Decompress(b)
		if err != nil {
			return nil, false, err
		}

		b = dec
	}

	return b, true, nil
}

// Flush fsyncs every stored file and then the directory itself.
func (d *Disk) Flush() error {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		if err := d.locks.read(name, func() error {
			return d.withFile(func() error {
				return syncPath(filepath.Join(d.path, name))
			})
		}); err != nil {
			return err
		}
	}

	return syncPath(d.path)
}

func (d *Disk) Close() error {
	return nil
}

func (d *Disk) mayContain(key []byte) bool {
	d.filterLock.RLock()
	defer d.filterLock.RUnlock()

	return d.filter.Test(key)
}

func (d *Disk) withFile(fn func() error) error {
	if d.sem == nil {
		return fn()
	}

	return d.sem.Do(fn)
}

func syncPath(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Sync()
}
