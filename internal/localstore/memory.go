package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// FileStore keeps every key in memory and rewrites a single JSON file after
// each mutation.
type FileStore struct {
	mem  *MemoryStore
	path string
	mu   sync.Mutex
}

// NewFileStore loads path if it exists. A missing or unreadable JSON file
// starts the store empty.
func NewFileStore(path string) (*FileStore, error) {
	fsStore := &FileStore{mem: NewMemoryStore(), path: path}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fsStore, nil
	case err != nil:
		return nil, fmt.Errorf("read local store %s: %w", path, err)
	}

	data := map[string]string{}
	if err := json.Unmarshal(raw, &data); err == nil {
		fsStore.mem.data = data
	}
	return fsStore, nil
}

func (f *FileStore) Get(ctx context.Context, key string) (string, error) {
	return f.mem.Get(ctx, key)
}

// Set writes the file first; the in-memory copy changes only once the write
// succeeded.
func (f *FileStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.snapshot()
	next[key] = value
	if err := f.flush(next); err != nil {
		return err
	}
	return f.mem.Set(ctx, key, value)
}

func (f *FileStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.snapshot()
	delete(next, key)
	if err := f.flush(next); err != nil {
		return err
	}
	return f.mem.Delete(ctx, key)
}

func (f *FileStore) Keys(ctx context.Context) ([]string, error) {
	return f.mem.Keys(ctx)
}

func (f *FileStore) snapshot() map[string]string {
	f.mem.mu.RLock()
	defer f.mem.mu.RUnlock()
	out := make(map[string]string, len(f.mem.data)+1)
	for k, v := range f.mem.data {
		out[k] = v
	}
	return out
}

func (f *FileStore) flush(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local store dir: %w", err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	return os.Rename(tmp, f.path)
}
