// Package memory holds an in-process key-value store used by tests and by
// callers that do not need durability.
package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/bnema/task-list-cli/internal/ports"
)

type Store struct {
	mu      sync.RWMutex
	entries map[string]string
	putErr  error
}

var _ ports.KeyValueStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{entries: map[string]string{}}
}

// FailPuts makes every following Put return err. A nil err restores writes.
func (s *Store) FailPuts(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.putErr = err
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.putErr != nil {
		return s.putErr
	}
	s.entries[key] = value
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateKey(key); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return "", fmt.Errorf("memory entry %q: %w", key, domain.ErrKeyNotFound)
	}
	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key is empty")
	}
	return nil
}
