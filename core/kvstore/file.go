package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// File is a Store implementation backed by a single JSON document on disk.
// The whole state is rewritten atomically (write to a temp file, then rename)
// on every mutation, so a crash mid-write never leaves a torn file behind.
type File struct {
	mu     sync.Mutex
	path   string
	data   map[string][]byte
	closed bool
}

// NewFile opens or creates a file-backed store at the given path. A file that
// exists but does not parse is treated as an empty store rather than an
// error: cached localization data is always reconstructible from the remote
// source, so a corrupt cache is equivalent to no cache.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("file path is required")
	}

	store := &File{
		path: path,
		data: make(map[string][]byte),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read store file: %w", err)
		}
		return store, nil
	}

	if err := json.Unmarshal(raw, &store.data); err != nil || store.data == nil {
		store.data = make(map[string][]byte)
	}

	return store, nil
}

// Get retrieves the value for a key.
func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, false, ErrClosed
	}

	value, found := f.data[key]
	if !found {
		return nil, false, nil
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set stores a value and persists the full state to disk.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	f.data[key] = stored
	return f.persist()
}

// Delete removes a key and persists the full state to disk.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	if _, found := f.data[key]; !found {
		return nil
	}

	delete(f.data, key)
	return f.persist()
}

// Keys returns all keys with the given prefix, sorted.
func (f *File) Keys(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrClosed
	}

	keys := make([]string, 0, len(f.data))
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close flushes state to disk and marks the store as closed.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}

	err := f.persist()
	f.closed = true
	f.data = nil
	return err
}

// persist writes the state to a temp file in the target directory and
// renames it over the destination. Callers must hold f.mu.
func (f *File) persist() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close store file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
