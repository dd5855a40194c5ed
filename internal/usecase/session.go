package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
	"github.com/aryamansethi1503/summarizationWithAI/internal/port"
)

// Session owns the lifecycle of one active indexing session: the chunk store
// contents and the set of registered filenames. Exactly one Session is active
// per process.
type Session struct {
	store port.ChunkStore

	mu        sync.Mutex
	filenames map[string]struct{}
}

func NewSession(store port.ChunkStore) *Session {
	return &Session{
		store:     store,
		filenames: make(map[string]struct{}),
	}
}

// Restore seeds the filename registry from the chunks already present in a
// persistent store. Call once at startup.
func (s *Session) Restore(ctx context.Context) error {
	names, err := s.store.Filenames(ctx)
	if err != nil {
		return domain.Upstream("chunk store", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		s.filenames[name] = struct{}{}
	}
	return nil
}

// Reset wipes every chunk and clears the registry. Readers racing the reset
// see either the old index or the new empty one; in-flight ingests tagged
// with the old epoch lose their remaining inserts.
func (s *Session) Reset(ctx context.Context) error {
	if _, err := s.store.Reset(ctx); err != nil {
		return domain.Upstream("chunk store", err)
	}

	s.mu.Lock()
	s.filenames = make(map[string]struct{})
	s.mu.Unlock()
	return nil
}

// Register records filename as part of the active document set.
func (s *Session) Register(filename string) {
	s.mu.Lock()
	s.filenames[filename] = struct{}{}
	s.mu.Unlock()
}

// Unregister removes filename from the registry and cascade-deletes its
// chunks. Unknown filenames fail with domain.ErrNotFound.
func (s *Session) Unregister(ctx context.Context, filename string) error {
	s.mu.Lock()
	_, ok := s.filenames[filename]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: %w", filename, domain.ErrNotFound)
	}

	// The store call is slow I/O; the registry lock is not held across it.
	if _, err := s.store.DeleteFile(ctx, filename); err != nil {
		return domain.Upstream("chunk store", err)
	}

	s.mu.Lock()
	delete(s.filenames, filename)
	s.mu.Unlock()
	return nil
}

// Filenames returns a sorted snapshot of the registered filenames.
func (s *Session) Filenames() []string {
	s.mu.Lock()
	names := make([]string, 0, len(s.filenames))
	for name := range s.filenames {
		names = append(names, name)
	}
	s.mu.Unlock()

	sort.Strings(names)
	return names
}

// Epoch reports the store's current session epoch.
func (s *Session) Epoch() uint64 {
	return s.store.Epoch()
}
