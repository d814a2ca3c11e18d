package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	m "gooze.dev/pkg/mutfix/internal/model"
)

const (
	// CheckoutLockName is the lock file created in the project root while a
	// validation loop owns the checkout.
	CheckoutLockName = ".mutfix.lock"

	// BackupSuffix marks the pristine copy of a file that is currently patched.
	BackupSuffix = ".mutfix.bak"

	// backupTempSuffix marks a backup that is still being written. It is
	// never restored.
	backupTempSuffix = BackupSuffix + ".tmp"
)

// ErrCheckoutBusy is returned when another live process holds the checkout.
var ErrCheckoutBusy = errors.New("project checkout is locked by another process")

// Checkout is an exclusively-owned handle on a project checkout. Every write
// goes through Apply, and the original content comes back with Restore.
type Checkout interface {
	Root() m.Path

	// Apply backs up target and replaces its content. A previous Apply that
	// was not restored is restored first.
	Apply(ctx context.Context, target m.Path, content []byte) error

	// Restore puts the backed-up file back. It is a no-op when nothing is patched.
	Restore(ctx context.Context) error

	// Release restores the checkout and drops the lock.
	Release(ctx context.Context) error
}

// CheckoutProvider acquires checkouts.
type CheckoutProvider interface {
	Acquire(ctx context.Context, root m.Path, runID string) (Checkout, error)
}

type lockInfo struct {
	PID        int       `json:"pid"`
	RunID      string    `json:"run_id"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// LocalCheckoutProvider leases checkouts on the local filesystem.
type LocalCheckoutProvider struct{}

// NewLocalCheckoutProvider constructs a LocalCheckoutProvider.
func NewLocalCheckoutProvider() *LocalCheckoutProvider {
	return &LocalCheckoutProvider{}
}

// Acquire takes the lock on root and restores any file left patched by an
// interrupted run before handing the checkout out.
func (p *LocalCheckoutProvider) Acquire(ctx context.Context, root m.Path, runID string) (Checkout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lockPath := filepath.Join(string(root), CheckoutLockName)

	if err := createLock(lockPath, runID); err != nil {
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create checkout lock: %w", err)
		}

		if !staleLock(lockPath) {
			return nil, fmt.Errorf("%w: %s", ErrCheckoutBusy, root)
		}

		slog.Warn("Removing stale checkout lock", "lock", lockPath)

		if err := os.Remove(lockPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale lock: %w", err)
		}

		if err := createLock(lockPath, runID); err != nil {
			return nil, fmt.Errorf("failed to create checkout lock: %w", err)
		}
	}

	checkout := &localCheckout{root: root, lockPath: lockPath}

	if err := checkout.recoverBackups(ctx); err != nil {
		_ = os.Remove(lockPath)
		return nil, err
	}

	return checkout, nil
}

func createLock(path, runID string) error {
	// #nosec G304 - lock path is inside the project root
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	info := lockInfo{PID: os.Getpid(), RunID: runID, AcquiredAt: time.Now().UTC()}
	if err := json.NewEncoder(f).Encode(info); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// staleLock reports whether the process that wrote the lock is gone.
func staleLock(path string) bool {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return false
	}

	var info lockInfo
	if err := json.Unmarshal(data, &info); err != nil || info.PID <= 0 {
		return true
	}

	if info.PID == os.Getpid() {
		return false
	}

	proc, err := os.FindProcess(info.PID)
	if err != nil {
		return true
	}

	err = proc.Signal(syscall.Signal(0))

	return err != nil && !errors.Is(err, syscall.EPERM)
}

type localCheckout struct {
	root     m.Path
	lockPath string
	pending  string
}

func (c *localCheckout) Root() m.Path {
	return c.root
}

// recoverBackups restores every file that still has a backup next to it.
func (c *localCheckout) recoverBackups(ctx context.Context) error {
	return filepath.Walk(string(c.root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.HasSuffix(path, backupTempSuffix) {
			slog.Warn("Discarding incomplete backup", "file", path)

			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove incomplete backup %s: %w", path, err)
			}

			return nil
		}

		if !strings.HasSuffix(path, BackupSuffix) {
			return nil
		}

		original := strings.TrimSuffix(path, BackupSuffix)

		slog.Warn("Restoring file left patched by an interrupted run", "file", original)

		if err := os.Rename(path, original); err != nil {
			return fmt.Errorf("failed to restore %s: %w", original, err)
		}

		return nil
	})
}

func (c *localCheckout) Apply(ctx context.Context, target m.Path, content []byte) error {
	if err := c.Restore(ctx); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	backup := string(target) + BackupSuffix

	original, err := os.ReadFile(string(target)) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", target, err)
	}

	info, err := os.Stat(string(target))
	if err != nil {
		return err
	}

	if err := writeBackup(backup, original, info.Mode()); err != nil {
		return fmt.Errorf("failed to back up %s: %w", target, err)
	}

	c.pending = string(target)

	if err := os.WriteFile(string(target), content, info.Mode()); err != nil {
		return fmt.Errorf("failed to write patched %s: %w", target, err)
	}

	return nil
}

// writeBackup makes the backup visible under its final name only once its
// content is synced, so recovery never restores a partial copy.
func writeBackup(backup string, data []byte, mode os.FileMode) error {
	tmp := strings.TrimSuffix(backup, BackupSuffix) + backupTempSuffix

	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode) // #nosec G304
	if err != nil {
		return err
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)

		return err
	}

	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)

		return err
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, backup)
}

// Restore ignores ctx cancellation: an interrupted loop must still leave the
// checkout clean.
func (c *localCheckout) Restore(_ context.Context) error {
	if c.pending == "" {
		return nil
	}

	backup := c.pending + BackupSuffix
	if err := os.Rename(backup, c.pending); err != nil {
		return fmt.Errorf("failed to restore %s: %w", c.pending, err)
	}

	c.pending = ""

	return nil
}

func (c *localCheckout) Release(ctx context.Context) error {
	restoreErr := c.Restore(ctx)

	if err := os.Remove(c.lockPath); err != nil && !os.IsNotExist(err) {
		return errors.Join(restoreErr, fmt.Errorf("failed to remove checkout lock: %w", err))
	}

	return restoreErr
}
