package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/task-list-cli/internal/adapters/kv/file"
	tomlstore "github.com/bnema/task-list-cli/internal/adapters/kv/toml"
	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/bnema/task-list-cli/internal/ports"
)

// Store reads and writes through primary and only touches fallback when
// primary fails. Reads also consult fallback when primary has no entry, which
// lets a TOML document take over from an older file-per-key directory.
type Store struct {
	primary  ports.KeyValueStore
	fallback ports.KeyValueStore
}

var _ ports.KeyValueStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary store is nil")
	errNilFallbackStore = errors.New("fallback store is nil")
)

func NewStore(primary ports.KeyValueStore, fallback ports.KeyValueStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.KeyValueStore, fallback ports.KeyValueStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewTOMLFirstWithFileFallback(documentPath string, fileRoot string) (*Store, error) {
	primary, err := tomlstore.NewStore(documentPath)
	if err != nil {
		return nil, fmt.Errorf("open toml store: %w", err)
	}

	return NewStoreChecked(primary, filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	primaryMissing := errors.Is(err, domain.ErrKeyNotFound)
	fallbackMissing := errors.Is(fallbackErr, domain.ErrKeyNotFound)
	switch {
	case primaryMissing && fallbackMissing:
		return "", err
	case primaryMissing:
		return "", fmt.Errorf("fallback backend get failed: %w", fallbackErr)
	case fallbackMissing:
		return "", fmt.Errorf("primary backend get failed: %w", err)
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
