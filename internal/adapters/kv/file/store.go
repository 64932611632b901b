// Package file keeps every key in a plain file named after it, holding the
// value and nothing else. A task list saved this way is one readable line that
// can be fixed in any editor when the tool is not around.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/bnema/task-list-cli/internal/ports"
)

// ErrInvalidKey is returned for keys that are blank or would leave the
// store directory.
var ErrInvalidKey = errors.New("invalid storage key")

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

type Store struct {
	dir string
	mu  sync.RWMutex
}

var _ ports.KeyValueStore = (*Store)(nil)

func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Get returns the file content. One trailing line break, as most editors add
// on save, is not part of the value.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("no %s file in %s: %w", key, s.dir, domain.ErrKeyNotFound)
	case err != nil:
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	value := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(value, "\r"), nil
}

// Put replaces the file through a sibling temp file so a reader or an open
// editor never sees half a list.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("prepare %s: %w", filepath.Dir(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("stage %s: %w", path, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("stage %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}

	return nil
}

func (s *Store) resolve(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Clean(strings.TrimSpace(key))
	switch {
	case strings.TrimSpace(key) == "", name == ".":
		return "", fmt.Errorf("%w: blank", ErrInvalidKey)
	case filepath.IsAbs(name), name == "..", strings.HasPrefix(name, ".."+string(filepath.Separator)):
		return "", fmt.Errorf("%w: %q leaves %s", ErrInvalidKey, key, s.dir)
	}

	return filepath.Join(s.dir, name), nil
}
