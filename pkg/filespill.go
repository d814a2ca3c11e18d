// Package pkg holds helpers shared by the mutfix pipeline that do not depend
// on its domain types.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultSpillDir is used when NewFileSpill is given an empty directory.
const DefaultSpillDir = "mutfix-spill"

// errStopScan ends a scan early without reporting an error.
var errStopScan = errors.New("stop scan")

// FileSpill is an append-only, gob-encoded log of records kept on disk. The
// validation loop spills one outcome per compiled, failed or skipped
// candidate, so a long run never holds every outcome in memory and the
// per-mutant breakdown is read back in the order the candidates were tried.
type FileSpill[T any] interface {
	// Len is the number of records appended so far.
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	// Get decodes the record at index, scanning from the start of the file.
	Get(index uint64) (T, error)
	// Range visits the records in append order and stops at the first
	// callback error, which it returns.
	Range(f func(index uint64, item T) error) error
	// Close stops further appends. Records stay readable.
	Close() error
	// Remove closes the spill and deletes its file.
	Remove() error
}

type fileSpill[T any] struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	encoder *gob.Encoder
	length  uint64
}

func (s *fileSpill[T]) Path() string {
	return s.path
}

func (s *fileSpill[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

func (s *fileSpill[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("spill %s is closed", s.path)
	}

	if err := s.encoder.Encode(item); err != nil {
		slog.Error("Failed to spill record", "path", s.path, "index", s.length, "error", err)
		return fmt.Errorf("failed to encode record %d: %w", s.length, err)
	}

	s.length++

	return nil
}

func (s *fileSpill[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := s.Append(item); err != nil {
			return err
		}
	}

	return nil
}

func (s *fileSpill[T]) Get(index uint64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found T

	if index >= s.length {
		return found, fmt.Errorf("record %d out of range, spill %s holds %d", index, s.path, s.length)
	}

	err := s.scan(func(i uint64, item T) error {
		if i < index {
			return nil
		}

		found = item

		return errStopScan
	})
	if err != nil && !errors.Is(err, errStopScan) {
		var zero T
		return zero, err
	}

	return found, nil
}

func (s *fileSpill[T]) Range(fn func(index uint64, item T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scan(fn)
}

// scan decodes every record in order. The caller holds mu.
func (s *fileSpill[T]) scan(fn func(index uint64, item T) error) error {
	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open spill: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("Failed to close spill reader", "path", s.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := range s.length {
		// gob leaves omitted fields untouched, so every record decodes into
		// a fresh value.
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("Failed to read spilled record", "path", s.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode record %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

func (s *fileSpill[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closeLocked()
}

func (s *fileSpill[T]) closeLocked() error {
	if s.file == nil {
		return nil
	}

	if err := s.file.Close(); err != nil {
		return fmt.Errorf("failed to close spill %s: %w", s.path, err)
	}

	s.file = nil
	slog.Debug("Closed spill", "path", s.path, "records", s.length)

	return nil
}

func (s *fileSpill[T]) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.closeLocked(); err != nil {
		return err
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove spill %s: %w", s.path, err)
	}

	return nil
}

// NewFileSpill creates an empty spill file inside dir. An empty dir means
// DefaultSpillDir under the system temp directory.
func NewFileSpill[T any](dir string) (FileSpill[T], error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), DefaultSpillDir)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create spill directory %s: %w", dir, err)
	}

	file, err := os.CreateTemp(dir, "spill-*.gob")
	if err != nil {
		return nil, fmt.Errorf("failed to create spill in %s: %w", dir, err)
	}

	slog.Debug("Created spill", "path", file.Name())

	return &fileSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}
