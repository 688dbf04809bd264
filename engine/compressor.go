package engine

import (
	"bytes"
	"compress/zlib"

	"github.com/golang/snappy"
)

type Compressor interface {
	Compress([]byte) ([]byte, error)
	Decompress([]byte) ([]byte, error)
}

type SnappyCompressor struct{}

func (SnappyCompressor) Compress(dec []byte) ([]byte, error) {
	return snappy.Encode(nil, dec), nil
}

func (SnappyCompressor) Decompress(cmp []byte) ([]byte, error) {
	return snappy.Decode(nil, cmp)
}

// ZLibCompressor compresses with zlib at Level; the zero value uses zlib.DefaultCompression.
type ZLibCompressor struct {
	Level int
}

func (c ZLibCompressor) Compress(dec []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}

	buf := new(bytes.Buffer)

	zw, err := zlib.NewWriterLevel(buf, level)
	if err != nil {
		return nil, err
	}

	if _, err := zw.Write(dec); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (ZLibCompressor) Decompress(cmp []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(cmp))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)

	if _, err := buf.ReadFrom(zr); err != nil {
		return nil, err
	}

	if err := zr.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
