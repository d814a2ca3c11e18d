package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// JournalEntry is what the journal remembers about one attempted candidate.
type JournalEntry struct {
	Status m.ValidationStatus `json:"status"`
	PoolID *int               `json:"pool_id,omitempty"`
	RunID  string             `json:"run_id,omitempty"`
	At     time.Time          `json:"at"`
}

// Journal records validation attempts so that a restarted run skips
// candidates that were already compiled.
type Journal interface {
	Lookup(ctx context.Context, key string) (JournalEntry, bool, error)
	Record(ctx context.Context, key string, entry JournalEntry) error
	Close() error
}

// JournalConfig configures the badger-backed journal.
type JournalConfig struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory keeps the journal in memory, used by tests.
	InMemory bool

	// SyncWrites flushes every record before returning.
	SyncWrites bool

	// Logger receives BadgerDB's internal logging. Nil disables it.
	Logger *slog.Logger
}

// DefaultJournalConfig returns a durable configuration rooted at path.
func DefaultJournalConfig(path string) JournalConfig {
	return JournalConfig{Path: path, SyncWrites: true}
}

const journalKeyPrefix = "attempt/"

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// BadgerJournal stores journal entries in BadgerDB.
type BadgerJournal struct {
	db *badger.DB
}

// OpenBadgerJournal opens (or creates) the journal database.
func OpenBadgerJournal(cfg JournalConfig) (*BadgerJournal, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent journal")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create journal directory %s: %w", cfg.Path, err)
		}

		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	return &BadgerJournal{db: db}, nil
}

// Lookup returns the entry recorded for key, if any.
func (j *BadgerJournal) Lookup(ctx context.Context, key string) (JournalEntry, bool, error) {
	if err := ctx.Err(); err != nil {
		return JournalEntry{}, false, err
	}

	var entry JournalEntry

	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(journalKeyPrefix + key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return JournalEntry{}, false, nil
	}

	if err != nil {
		return JournalEntry{}, false, fmt.Errorf("journal lookup %s: %w", key, err)
	}

	return entry, true, nil
}

// Record stores entry under key, replacing any previous value.
func (j *BadgerJournal) Record(ctx context.Context, key string, entry JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(journalKeyPrefix+key), data)
	})
}

// Close closes the database.
func (j *BadgerJournal) Close() error {
	return j.db.Close()
}

// NopJournal remembers nothing; used when journaling is disabled.
type NopJournal struct{}

// Lookup always reports a miss.
func (NopJournal) Lookup(context.Context, string) (JournalEntry, bool, error) {
	return JournalEntry{}, false, nil
}

// Record discards the entry.
func (NopJournal) Record(context.Context, string, JournalEntry) error {
	return nil
}

// Close is a no-op.
func (NopJournal) Close() error {
	return nil
}
