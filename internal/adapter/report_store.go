package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "gooze.dev/pkg/mutfix/internal/model"
)

// ReportStore persists structured pipeline artifacts: the reranked-patches
// checkpoint, pool entry metadata and audit reports.
type ReportStore interface {
	SaveJSON(ctx context.Context, path m.Path, v any) error
	LoadJSON(ctx context.Context, path m.Path, v any) error
	SaveYAML(ctx context.Context, path m.Path, v any) error
}

// LocalReportStore writes artifacts atomically to the local filesystem.
type LocalReportStore struct{}

// NewReportStore constructs a LocalReportStore.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveJSON writes v as indented JSON.
func (s *LocalReportStore) SaveJSON(ctx context.Context, path m.Path, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	return WriteAtomic(string(path), append(data, '\n'))
}

// LoadJSON reads the JSON file at path into v.
func (s *LocalReportStore) LoadJSON(ctx context.Context, path m.Path, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}

	return nil
}

// SaveYAML writes v as YAML.
func (s *LocalReportStore) SaveYAML(ctx context.Context, path m.Path, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	return WriteAtomic(string(path), data)
}

// WriteAtomic writes data to a temp file in the destination directory and
// renames it into place, so readers never observe a partial artifact.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()

	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s -> %s: %w", tmpName, path, err)
	}

	tmpName = ""

	return nil
}
