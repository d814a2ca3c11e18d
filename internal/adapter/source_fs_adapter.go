// Package adapter contains the infrastructure adapters used by the patch
// validation pipeline: filesystem access, external collaborators and storage.
package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when reading mutation logs and writing pipeline artifacts. It hides
// direct `os` access so the stage logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps stage logic decoupled from os/fs.
type SourceFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// Open opens a file for streaming reads.
	Open(ctx context.Context, path m.Path) (io.ReadCloser, error)

	// Create truncates or creates a file for streaming writes, creating
	// parent directories.
	Create(ctx context.Context, path m.Path) (io.WriteCloser, error)

	// WriteFile writes content to a file, creating parent directories.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// CopyFile copies src to dst, creating parent directories of dst.
	CopyFile(ctx context.Context, src, dst m.Path) error

	// Rename moves src to dst.
	Rename(ctx context.Context, src, dst m.Path) error

	// Remove deletes a single file. Missing files are not an error.
	Remove(ctx context.Context, path m.Path) error

	// RemoveAll deletes path and everything below it.
	RemoveAll(ctx context.Context, path m.Path) error

	// Exists reports whether something exists at path.
	Exists(ctx context.Context, path m.Path) bool

	// NonEmpty reports whether path is a regular file with at least one byte.
	NonEmpty(ctx context.Context, path m.Path) bool

	// MkdirAll creates a directory and its parents.
	MkdirAll(ctx context.Context, path m.Path) error

	// FindFiles lists files under root whose name ends with ext, sorted.
	FindFiles(ctx context.Context, root m.Path, ext string) ([]m.Path, error)

	// ListDirs lists the immediate sub-directory names of root, sorted.
	ListDirs(ctx context.Context, root m.Path) ([]string, error)

	// RelPath returns the relative path from base to target.
	RelPath(ctx context.Context, base, target m.Path) (m.Path, error)
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// Open opens path for reading.
func (a *LocalSourceFSAdapter) Open(ctx context.Context, path m.Path) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - workspace path
	return os.Open(string(path))
}

// Create truncates path for writing.
func (a *LocalSourceFSAdapter) Create(ctx context.Context, path m.Path) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return nil, err
	}

	// #nosec G304 - workspace path
	return os.Create(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// CopyFile copies a single file, preserving its mode.
func (a *LocalSourceFSAdapter) CopyFile(ctx context.Context, src, dst m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// #nosec G304 - src is an internal project or workspace path
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is an internal destination path
	destFile, err := os.OpenFile(string(dst), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}

	return destFile.Close()
}

// Rename moves src to dst.
func (a *LocalSourceFSAdapter) Rename(ctx context.Context, src, dst m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.Rename(string(src), string(dst))
}

// Remove deletes a single file.
func (a *LocalSourceFSAdapter) Remove(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(string(path)); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// RemoveAll deletes a directory tree.
func (a *LocalSourceFSAdapter) RemoveAll(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.RemoveAll(string(path))
}

// Exists reports whether path exists.
func (a *LocalSourceFSAdapter) Exists(_ context.Context, path m.Path) bool {
	_, err := os.Stat(string(path))
	return err == nil
}

// NonEmpty reports whether path is a regular non-empty file.
func (a *LocalSourceFSAdapter) NonEmpty(_ context.Context, path m.Path) bool {
	info, err := os.Stat(string(path))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular() && info.Size() > 0
}

// MkdirAll creates path and its parents.
func (a *LocalSourceFSAdapter) MkdirAll(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.MkdirAll(string(path), 0o750)
}

// FindFiles walks root and returns every file with the given extension.
func (a *LocalSourceFSAdapter) FindFiles(ctx context.Context, root m.Path, ext string) ([]m.Path, error) {
	var found []m.Path

	err := filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() {
			return nil
		}

		if strings.HasSuffix(info.Name(), ext) {
			found = append(found, m.Path(path))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })

	return found, nil
}

// ListDirs returns the names of the directories directly below root.
func (a *LocalSourceFSAdapter) ListDirs(ctx context.Context, root m.Path) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(string(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	return names, nil
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(_ context.Context, base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}
