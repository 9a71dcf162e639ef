// Package cache stores computed power spectra in an embedded key-value store
// so that repeated runs over the same input and grid skip the computation.
// Entries are zstd-compressed and keyed by an xxhash digest of everything that
// determines the result.
package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"

	"github.com/cwbudde/algo-periodogram/dsp/grid"
	"github.com/cwbudde/algo-periodogram/dsp/periodogram"
	"github.com/cwbudde/algo-periodogram/dsp/series"
)

const keyPrefix = "spectrum/"

// payloadVersion is bumped whenever the encoded layout changes.
const payloadVersion = 1

var errCorrupt = errors.New("cache: corrupt entry")

// Config holds cache configuration.
type Config struct {
	// Path is the badger directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps the store in memory only.
	InMemory bool
	// TTL expires entries after the given duration; zero keeps them forever.
	TTL time.Duration
}

// Store is a spectrum cache. It is safe for concurrent use.
type Store struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
	ttl time.Duration
}

// Open opens or creates the store described by cfg.
func Open(cfg Config) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: open badger: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: zstd decoder: %w", err)
	}

	return &Store{db: db, enc: enc, dec: dec, ttl: cfg.TTL}, nil
}

// Close releases the store.
func (s *Store) Close() error {
	s.dec.Close()
	return errors.Join(s.enc.Close(), s.db.Close())
}

// Key identifies a cached spectrum.
type Key uint64

func (k Key) String() string { return fmt.Sprintf("%016x", uint64(k)) }

func (k Key) bytes() []byte { return []byte(keyPrefix + k.String()) }

// KeyFor digests the inputs that determine a spectrum: the samples, the grid
// and the result-affecting parts of cfg. The worker count is not included.
func KeyFor(time, flux []float64, g grid.Grid, cfg periodogram.Config) Key {
	d := xxhash.New()
	buf := make([]byte, 0, 64)

	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(time)))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(cfg.Weights)))
	_, _ = d.Write(buf)

	writeFloats(d, time)
	writeFloats(d, flux)
	writeFloats(d, cfg.Weights)

	buf = buf[:0]
	for _, v := range []float64{g.Low(), g.High(), g.Step(), cfg.SingularTolerance} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(cfg.Unit))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(cfg.Singular))
	if cfg.Preprocess {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	_, _ = d.Write(buf)

	return Key(d.Sum64())
}

func writeFloats(d *xxhash.Digest, x []float64) {
	var b [8]byte
	for _, v := range x {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		_, _ = d.Write(b[:])
	}
}

// Get returns the spectrum stored under key. ok is false on a miss.
func (s *Store) Get(key Key) (spec *periodogram.Spectrum, ok bool, err error) {
	var raw []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key.bytes())
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}

	spec, err = s.decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return spec, true, nil
}

// Put stores spec under key, replacing any previous entry.
func (s *Store) Put(key Key, spec *periodogram.Spectrum) error {
	val := s.encode(spec)
	err := s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key.bytes(), val)
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry under key. Missing keys are not an error.
func (s *Store) Delete(key Key) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key.bytes())
	})
}

// Len returns the number of cached spectra.
func (s *Store) Len() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Compute returns the cached spectrum for the inputs or computes and stores
// it. hit reports whether the result came from the cache.
func (s *Store) Compute(ctx context.Context, ts series.TimeSeries, g grid.Grid, opts ...periodogram.Option) (spec *periodogram.Spectrum, hit bool, err error) {
	cfg := periodogram.ApplyOptions(opts...)
	if ts.Weighted() {
		cfg.Weights = ts.Weight
	}
	key := KeyFor(ts.Time, ts.Flux, g, cfg)

	spec, hit, err = s.Get(key)
	if err != nil || hit {
		return spec, hit, err
	}

	spec, err = periodogram.ComputeSeries(ctx, ts, g, opts...)
	if err != nil {
		return nil, false, err
	}
	if err := s.Put(key, spec); err != nil {
		return nil, false, err
	}
	return spec, false, nil
}

// encode lays out version, count, frequencies and powers little-endian and
// compresses the result.
func (s *Store) encode(spec *periodogram.Spectrum) []byte {
	n := spec.Len()
	raw := make([]byte, 0, 9+16*n)
	raw = append(raw, payloadVersion)
	raw = binary.LittleEndian.AppendUint64(raw, uint64(n))
	for _, p := range spec.All() {
		raw = binary.LittleEndian.AppendUint64(raw, math.Float64bits(p.Frequency))
	}
	for _, p := range spec.All() {
		raw = binary.LittleEndian.AppendUint64(raw, math.Float64bits(p.Power))
	}
	return s.enc.EncodeAll(raw, make([]byte, 0, len(raw)/2))
}

func (s *Store) decode(val []byte) (*periodogram.Spectrum, error) {
	raw, err := s.dec.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errCorrupt, err)
	}
	if len(raw) < 9 || raw[0] != payloadVersion {
		return nil, errCorrupt
	}

	n := binary.LittleEndian.Uint64(raw[1:9])
	body := raw[9:]
	if n > uint64(len(body))/16 || uint64(len(body)) != 16*n {
		return nil, errCorrupt
	}

	freq := make([]float64, n)
	power := make([]float64, n)
	for i := range freq {
		freq[i] = math.Float64frombits(binary.LittleEndian.Uint64(body[8*i:]))
		power[i] = math.Float64frombits(binary.LittleEndian.Uint64(body[8*(int(n)+i):]))
	}
	return periodogram.NewSpectrum(freq, power)
}
