// Package store contains the core logic for the in-memory versioned
// key-value store. It is designed to be thread-safe for concurrent access.
package store

import (
	"errors"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/ASHISH26940/selenekv/internal/etag"
)

// Put argument errors. A key or state that was never supplied is a caller
// bug, not a storable value.
var (
	ErrEmptyKey = errors.New("store: key must not be empty")
	ErrNilState = errors.New("store: state must not be nil")
)

// Entry holds one stored state payload and the entity tag derived from it.
// The pair is replaced wholesale on every write, so a Tag can never describe
// anything but its own State.
type Entry struct {
	Tag   etag.Tag
	State []byte
}

// Reader is the read capability of the store: lookups and prefix
// enumeration, no mutation.
type Reader interface {
	Get(key string) (Entry, bool)
	GetTag(key string) (etag.Tag, bool)
	ListKeysWithPrefix(prefix string) iter.Seq[string]
}

// Writer is the write capability of the store.
type Writer interface {
	Put(key string, state []byte) (etag.Tag, error)
	Clear()
}

// Store is a thread-safe in-memory mapping from resource identifiers to
// tagged state payloads. Identifiers are opaque URI-shaped strings.
// Enumeration follows insertion order, and overwriting a key keeps its
// original position.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string
}

// NewStore initializes and returns a new empty Store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]Entry),
	}
}

// Get retrieves the current Entry for a key. The returned state is a copy;
// mutating it cannot invalidate the stored tag.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return Entry{}, false
	}
	return Entry{Tag: e.Tag, State: slices.Clone(e.State)}, true
}

// GetTag retrieves only the entity tag for a key. Callers evaluating
// preconditions need the tag, not the payload behind it.
func (s *Store) GetTag(key string) (etag.Tag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e.Tag, ok
}

// Put unconditionally stores state as the new payload for key, replacing any
// prior entry, and returns the tag computed from the content. Writing the
// same bytes again yields the same tag. Both arguments are mandatory; on
// error the store is unchanged. Conditional writes are composed by callers
// from GetTag and Put.
func (s *Store) Put(key string, state []byte) (etag.Tag, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if state == nil {
		return "", ErrNilState
	}

	entry := Entry{Tag: etag.Compute(state), State: slices.Clone(state)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		s.order = append(s.order, key)
	}
	s.entries[key] = entry
	return entry.Tag, nil
}

// ListKeysWithPrefix returns a lazy sequence of every key whose string form
// starts with prefix, in insertion order. Ranging the sequence snapshots the
// key list under the read lock and filters outside it, so iteration never
// blocks writers and never observes a half-applied write. Matching is raw
// string-prefix: "/a" matches "/ab" as well as "/a/b".
func (s *Store) ListKeysWithPrefix(prefix string) iter.Seq[string] {
	return func(yield func(string) bool) {
		s.mu.RLock()
		keys := slices.Clone(s.order)
		s.mu.RUnlock()

		for _, key := range keys {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			if !yield(key) {
				return
			}
		}
	}
}

// Clear removes every entry. Intended for administrative reset; removing
// individual keys is deliberately unsupported.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry)
	s.order = nil
}
