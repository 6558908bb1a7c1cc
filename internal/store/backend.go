package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Backend abstracts where the store document lives, for testability.
type Backend interface {
	// Load returns the raw document, or nil with no error when nothing has
	// been written yet.
	Load() ([]byte, error)
	// Save replaces the whole document.
	Save(data []byte) error
	// Location names the document in messages and logs.
	Location() string
}

// FileBackend implements Backend using a file.
type FileBackend struct {
	File string
}

func NewFileBackend(file string) *FileBackend {
	return &FileBackend{File: file}
}

func (fb *FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(fb.File)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Save truncates and rewrites the file in place. An interrupted write can
// leave a partial document behind.
func (fb *FileBackend) Save(data []byte) error {
	if dir := filepath.Dir(fb.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(fb.File, data, 0o644)
}

func (fb *FileBackend) Location() string {
	return fb.File
}

// MemoryBackend implements Backend for testing (no disk I/O).
type MemoryBackend struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	saveErr error
}

// NewMemoryBackend returns a backend preloaded with data. A nil slice
// behaves like a file that does not exist yet.
func NewMemoryBackend(data []byte) *MemoryBackend {
	mb := &MemoryBackend{}
	if data != nil {
		mb.data = append([]byte(nil), data...)
	}
	return mb
}

func (mb *MemoryBackend) Load() ([]byte, error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.data == nil {
		return nil, nil
	}
	// Return a copy to avoid mutation
	return append([]byte(nil), mb.data...), nil
}

func (mb *MemoryBackend) Save(data []byte) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.saveErr != nil {
		return mb.saveErr
	}
	mb.data = append([]byte(nil), data...)
	mb.saves++
	return nil
}

// FailSaves makes every later Save return err until it is called with nil.
func (mb *MemoryBackend) FailSaves(err error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.saveErr = err
}

func (mb *MemoryBackend) Location() string {
	return "memory"
}

// Bytes returns the last saved document.
func (mb *MemoryBackend) Bytes() []byte {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return append([]byte(nil), mb.data...)
}

// Saves reports how many times Save has been called.
func (mb *MemoryBackend) Saves() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.saves
}
