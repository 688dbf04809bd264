package main

import (
	"github.com/ProtonMail/kvbench/bench"
	"github.com/ProtonMail/kvbench/engine"
)

func init() {
	bench.Register("badger", bench.For("badger", engine.OpenBadger))
	bench.Register("pebble", bench.For("pebble", engine.OpenPebble))
	bench.Register("leveldb", bench.For("leveldb", engine.OpenLevelDB))
	bench.Register("sqlite", bench.For("sqlite", engine.OpenSQLite))
	bench.Register("memory", bench.For("memory", engine.OpenMemory))
	bench.Register("disk", bench.For("disk", openDisk))
	bench.Register("disk-zlib", bench.For("disk-zlib", openDiskZLib))
}

func openDisk(dir string, opts engine.Options) (*engine.Disk, error) {
	return engine.OpenDisk(dir, opts)
}

func openDiskZLib(dir string, opts engine.Options) (*engine.Disk, error) {
	if !opts.Compression {
		return engine.OpenDisk(dir, opts)
	}

	return engine.OpenDisk(dir, opts, engine.WithCompressor(engine.ZLibCompressor{Level: opts.CompressionLevel}))
}
