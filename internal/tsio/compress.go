package tsio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies a file compression scheme.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	Snappy
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Snappy:
		return "snappy"
	default:
		return "none"
	}
}

// CompressionFor picks the scheme from the file extension: .gz, .zst or .sz.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".sz":
		return Snappy
	default:
		return None
	}
}

// NewReader wraps r with a decompressor for c.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("tsio: gzip: %w", err)
		}
		return zr, nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("tsio: zstd: %w", err)
		}
		return zr.IOReadCloser(), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// NewWriter wraps w with a compressor for c. Closing the returned writer
// flushes the compressor but does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("tsio: zstd: %w", err)
		}
		return zw, nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nopWriteCloser{bufio.NewWriter(w)}, nil
	}
}

type nopWriteCloser struct {
	*bufio.Writer
}

func (n nopWriteCloser) Close() error { return n.Flush() }

// Open opens path for reading, decompressing according to its extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(bufio.NewReader(f), CompressionFor(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileReader{ReadCloser: r, file: f}, nil
}

// Create creates path for writing, compressing according to its extension.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, CompressionFor(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileWriter{WriteCloser: w, file: f}, nil
}

type fileReader struct {
	io.ReadCloser
	file *os.File
}

func (r *fileReader) Close() error {
	return errors.Join(r.ReadCloser.Close(), r.file.Close())
}

type fileWriter struct {
	io.WriteCloser
	file *os.File
}

func (w *fileWriter) Close() error {
	return errors.Join(w.WriteCloser.Close(), w.file.Close())
}
