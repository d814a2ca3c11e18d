package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "gooze.dev/pkg/mutfix/internal/model"
)

func TestLocalCheckoutProvider_ApplyRestoreRelease(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	target := filepath.Join(root, "Calc.java")
	writeTestFile(t, target, "return a - b;\n")

	checkout, err := NewLocalCheckoutProvider().Acquire(ctx, m.Path(root), "run-1")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if checkout.Root() != m.Path(root) {
		t.Fatalf("Root() = %s, want %s", checkout.Root(), root)
	}

	if _, err := os.Stat(filepath.Join(root, CheckoutLockName)); err != nil {
		t.Fatalf("lock file missing: %v", err)
	}

	if err := checkout.Apply(ctx, m.Path(target), []byte("return a + b;\n")); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	assertContent(t, target, "return a + b;\n")
	assertContent(t, target+BackupSuffix, "return a - b;\n")

	// a second Apply restores the first patch before writing
	if err := checkout.Apply(ctx, m.Path(target), []byte("return b + a;\n")); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	assertContent(t, target+BackupSuffix, "return a - b;\n")

	if err := checkout.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	assertContent(t, target, "return a - b;\n")

	if err := checkout.Restore(ctx); err != nil {
		t.Fatalf("second Restore() error = %v", err)
	}

	if err := checkout.Apply(ctx, m.Path(target), []byte("patched\n")); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if err := checkout.Release(ctx); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	assertContent(t, target, "return a - b;\n")

	for _, leftover := range []string{target + BackupSuffix, filepath.Join(root, CheckoutLockName)} {
		if _, err := os.Stat(leftover); !os.IsNotExist(err) {
			t.Fatalf("%s still exists after Release(), err=%v", leftover, err)
		}
	}
}

func TestLocalCheckoutProvider_Busy(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	lock := fmt.Sprintf(`{"pid": %d, "run_id": "other"}`, os.Getpid())
	writeTestFile(t, filepath.Join(root, CheckoutLockName), lock)

	_, err := NewLocalCheckoutProvider().Acquire(ctx, m.Path(root), "run-2")
	if !errors.Is(err, ErrCheckoutBusy) {
		t.Fatalf("Acquire() error = %v, want ErrCheckoutBusy", err)
	}
}

func TestLocalCheckoutProvider_StaleLockAndBackups(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "src"))

	target := filepath.Join(root, "src", "Calc.java")
	writeTestFile(t, target, "left patched\n")
	writeTestFile(t, target+BackupSuffix, "pristine\n")
	writeTestFile(t, filepath.Join(root, CheckoutLockName), `{"pid": 0}`)

	checkout, err := NewLocalCheckoutProvider().Acquire(ctx, m.Path(root), "run-3")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	t.Cleanup(func() { _ = checkout.Release(ctx) })

	assertContent(t, target, "pristine\n")

	if _, err := os.Stat(target + BackupSuffix); !os.IsNotExist(err) {
		t.Fatalf("backup was not consumed, err=%v", err)
	}
}

func TestLocalCheckoutProvider_DiscardsIncompleteBackup(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	target := filepath.Join(root, "Calc.java")
	writeTestFile(t, target, "class Calc { int add(int a, int b) { return a + b; } }\n")
	writeTestFile(t, target+backupTempSuffix, "class Calc")

	checkout, err := NewLocalCheckoutProvider().Acquire(ctx, m.Path(root), "run-5")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	t.Cleanup(func() { _ = checkout.Release(ctx) })

	assertContent(t, target, "class Calc { int add(int a, int b) { return a + b; } }\n")

	if _, err := os.Stat(target + backupTempSuffix); !os.IsNotExist(err) {
		t.Fatalf("incomplete backup was not removed, err=%v", err)
	}
}

func TestLocalCheckout_ApplyLeavesNoTempBackup(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	target := filepath.Join(root, "Calc.java")
	writeTestFile(t, target, "return a - b;\n")

	checkout, err := NewLocalCheckoutProvider().Acquire(ctx, m.Path(root), "run-6")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	t.Cleanup(func() { _ = checkout.Release(ctx) })

	if err := checkout.Apply(ctx, m.Path(target), []byte("return a + b;\n")); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	assertContent(t, target+BackupSuffix, "return a - b;\n")

	if _, err := os.Stat(target + backupTempSuffix); !os.IsNotExist(err) {
		t.Fatalf("temporary backup left behind, err=%v", err)
	}
}

func TestLocalCheckout_ApplyMissingTarget(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	checkout, err := NewLocalCheckoutProvider().Acquire(ctx, m.Path(root), "run-4")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	defer func() { _ = checkout.Release(ctx) }()

	if err := checkout.Apply(ctx, m.Path(filepath.Join(root, "Missing.java")), []byte("x")); err == nil {
		t.Fatalf("Apply() expected error for missing target")
	}
}

func assertContent(t *testing.T, path, want string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}

	if string(data) != want {
		t.Fatalf("%s = %q, want %q", path, data, want)
	}
}
