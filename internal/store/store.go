// Package store persists the ordered todo collection as a single JSON
// document of the form {"todos": [{"title": "...", "complete": false}]}.
//
// The whole document is loaded on Open and rewritten on every mutation.
// There is no locking; the file is assumed to belong to one process for
// the duration of a command.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"todo/pkg/task"
)

// todosKey is the top-level key holding the task list.
const todosKey = "todos"

// ErrIndexOutOfRange is returned by index-based operations given an index
// outside the current collection.
var ErrIndexOutOfRange = errors.New("index out of range")

// IOError reports a failure to read, parse or write the store document.
type IOError struct {
	Op   string // "read", "parse" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Store holds the todo collection in memory and writes it through to its
// Backend on every mutation.
type Store struct {
	backend Backend
	log     *log.Logger
	todos   []task.Task
	extra   map[string]json.RawMessage // other top-level keys, kept verbatim
}

// Open loads the document from b. A missing or empty document, or one
// without a "todos" key, is initialized to an empty list and written back
// immediately. A nil logger discards diagnostics.
func Open(b Backend, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{backend: b, log: logger}

	data, err := b.Load()
	if err != nil {
		return nil, &IOError{Op: "read", Path: b.Location(), Err: err}
	}

	initialized, err := s.decode(data)
	if err != nil {
		return nil, &IOError{Op: "parse", Path: b.Location(), Err: err}
	}
	if !initialized {
		s.log.Debug("initializing store", "path", b.Location())
		if err := s.save(s.todos); err != nil {
			return nil, err
		}
	}

	s.log.Debug("store loaded", "path", b.Location(), "todos", len(s.todos))
	return s, nil
}

// decode fills the store from data and reports whether the document
// already carried the todos key.
func (s *Store) decode(data []byte) (bool, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, err
	}
	if err := validateDocument(doc); err != nil {
		return false, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return false, err
	}
	todosRaw, ok := raw[todosKey]
	delete(raw, todosKey)
	if len(raw) > 0 {
		s.extra = raw
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(todosRaw, &s.todos); err != nil {
		return false, fmt.Errorf("decode %s: %w", todosKey, err)
	}
	return true, nil
}

// save rewrites the whole document with todos as the collection.
func (s *Store) save(todos []task.Task) error {
	if todos == nil {
		todos = []task.Task{}
	}

	doc := make(map[string]any, len(s.extra)+1)
	for k, v := range s.extra {
		doc[k] = v
	}
	doc[todosKey] = todos

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &IOError{Op: "write", Path: s.backend.Location(), Err: err}
	}
	data = append(data, '\n')

	if err := s.backend.Save(data); err != nil {
		return &IOError{Op: "write", Path: s.backend.Location(), Err: err}
	}
	s.log.Debug("store saved", "path", s.backend.Location(), "todos", len(todos))
	return nil
}

// commit persists next and only then makes it the collection, so a failed
// write leaves the store as it was.
func (s *Store) commit(next []task.Task) error {
	if err := s.save(next); err != nil {
		return err
	}
	s.todos = next
	return nil
}

// Location names the backing document.
func (s *Store) Location() string {
	return s.backend.Location()
}

// All returns a copy of the collection in display order.
func (s *Store) All() []task.Task {
	out := make([]task.Task, len(s.todos))
	copy(out, s.todos)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.todos)
}

// Get returns the task at 0-based index i.
func (s *Store) Get(i int) (task.Task, bool) {
	if i < 0 || i >= len(s.todos) {
		return task.Task{}, false
	}
	return s.todos[i], true
}

// Append adds t to the end of the collection and persists.
func (s *Store) Append(t task.Task) error {
	return s.AppendAll([]task.Task{t})
}

// AppendAll adds ts to the end of the collection in order with a single
// write.
func (s *Store) AppendAll(ts []task.Task) error {
	if len(ts) == 0 {
		return nil
	}
	next := make([]task.Task, 0, len(s.todos)+len(ts))
	next = append(next, s.todos...)
	return s.commit(append(next, ts...))
}

// SetComplete marks the task at 0-based index i complete and persists.
// An out-of-range index writes nothing.
func (s *Store) SetComplete(i int) error {
	if i < 0 || i >= len(s.todos) {
		return fmt.Errorf("complete %d: %w", i, ErrIndexOutOfRange)
	}
	next := s.All()
	next[i].Complete = true
	return s.commit(next)
}

// RemoveAt removes the task at 0-based index i, persists, and returns the
// removed task. Tasks after i shift down by one.
func (s *Store) RemoveAt(i int) (task.Task, error) {
	if i < 0 || i >= len(s.todos) {
		return task.Task{}, fmt.Errorf("remove %d: %w", i, ErrIndexOutOfRange)
	}
	removed := s.todos[i]
	next := make([]task.Task, 0, len(s.todos)-1)
	next = append(next, s.todos[:i]...)
	next = append(next, s.todos[i+1:]...)
	if err := s.commit(next); err != nil {
		return task.Task{}, err
	}
	return removed, nil
}

// Clear empties the collection and persists.
func (s *Store) Clear() error {
	return s.commit(nil)
}
