package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot stores values in a JSON object file, one string value per key.
// Writes replace the file atomically.
type FileSlot struct {
	path string
	lock *Lock
}

// OpenFileSlot creates the parent directory of path and takes the lock on
// the file. Close releases the lock.
func OpenFileSlot(path string) (*FileSlot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	lock := NewLock(path)
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	return &FileSlot{path: path, lock: lock}, nil
}

// Path returns the backing file path.
func (f *FileSlot) Path() string {
	return f.path
}

// Close releases the file lock.
func (f *FileSlot) Close() error {
	return f.lock.Release()
}

// Get implements Slot.
func (f *FileSlot) Get(ctx context.Context, key string) ([]byte, error) {
	values, err := f.read()
	if err != nil {
		return nil, err
	}
	v, ok := values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

// Set implements Slot. A file that cannot be parsed is replaced.
func (f *FileSlot) Set(ctx context.Context, key string, value []byte) error {
	values, err := f.read()
	if err != nil && !errors.Is(err, ErrNotFound) {
		values = nil
	}
	if values == nil {
		values = make(map[string]string)
	}
	values[key] = string(value)

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage file: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.tmp.%d", f.path, os.Getpid())
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// read returns ErrNotFound when the file does not exist yet.
func (f *FileSlot) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse storage file: %w", err)
	}
	return values, nil
}
