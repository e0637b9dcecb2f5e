package memory

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/mise-cli/internal/core/domain"
	"github.com/custodia-labs/mise-cli/internal/core/ports/driven"
)

// Ensure TextStore implements the interface.
var _ driven.TextStore = (*TextStore)(nil)

// TextStore is an in-memory implementation of driven.TextStore for testing.
type TextStore struct {
	mu    sync.RWMutex
	texts map[string]string
	next  int

	// RemoveErr, when set, is returned by Remove.
	RemoveErr error
}

// NewTextStore creates an empty in-memory text store.
func NewTextStore() *TextStore {
	return &TextStore{texts: make(map[string]string)}
}

// Write stores text under the next free name.
func (s *TextStore) Write(text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		s.next++
		path := fmt.Sprintf("texts/doc-%04d.txt", s.next)
		if _, taken := s.texts[path]; !taken {
			s.texts[path] = text
			return path, nil
		}
	}
}

// Read returns the text at textPath.
func (s *TextStore) Read(textPath string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.texts[textPath]
	if !ok {
		return "", fmt.Errorf("reading %s: %w", textPath, domain.ErrNotFound)
	}
	return text, nil
}

// Remove deletes the text at textPath.
func (s *TextStore) Remove(textPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	delete(s.texts, textPath)
	return nil
}

// Dir returns a placeholder directory name.
func (s *TextStore) Dir() string {
	return ":memory:"
}

// Put stores text at an explicit path, overwriting any previous text.
func (s *TextStore) Put(textPath, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[textPath] = text
}

// Has reports whether a text exists at textPath.
func (s *TextStore) Has(textPath string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.texts[textPath]
	return ok
}
