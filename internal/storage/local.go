package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStaging keeps staged uploads in a flat directory on disk.
type LocalStaging struct {
	dir string
}

func NewLocalStaging(dir string) (*LocalStaging, error) {
	if dir == "" {
		dir = "data/upload"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory, %w", err)
	}

	return &LocalStaging{dir: dir}, nil
}

func (l *LocalStaging) Put(_ context.Context, key string, r io.Reader, _ int64) error {
	f, err := os.Create(filepath.Join(l.dir, filepath.Base(key)))
	if err != nil {
		return fmt.Errorf("failed to create staged file, %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("failed to write staged file, %w", err)
	}

	return nil
}

func (l *LocalStaging) Remove(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove staged file, %w", err)
	}

	return nil
}
