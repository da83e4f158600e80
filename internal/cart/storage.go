package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage persists the full line-item collection. Load is called once
// at store construction; Save after every mutation.
type Storage interface {
	Load(ctx context.Context) ([]LineItem, error)
	Save(ctx context.Context, items []LineItem) error
}

type memoryStorage struct {
	mu    sync.Mutex
	items []LineItem
}

// NewMemoryStorage keeps the cart in process memory only.
func NewMemoryStorage() Storage {
	return &memoryStorage{}
}

func (m *memoryStorage) Load(context.Context) ([]LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LineItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memoryStorage) Save(_ context.Context, items []LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make([]LineItem, len(items))
	copy(m.items, items)
	return nil
}

type fileStorage struct {
	path string
}

// NewFileStorage persists the cart as a JSON document in the local
// profile directory, surviving restarts on one device.
func NewFileStorage(path string) Storage {
	return &fileStorage{path: path}
}

func (f *fileStorage) Load(context.Context) ([]LineItem, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// Malformed persisted data is treated as an empty cart.
		return nil, nil
	}
	return items, nil
}

func (f *fileStorage) Save(_ context.Context, items []LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
