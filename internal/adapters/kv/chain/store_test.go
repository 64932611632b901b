package chain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/task-list-cli/internal/domain"
	portmocks "github.com/bnema/task-list-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "tasks").Return("A,B", nil).Once()

	value, err := store.Get(context.Background(), "tasks")
	require.NoError(t, err)
	assert.Equal(t, "A,B", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "tasks").Return("", errors.New("decode failed")).Once()
	fallback.EXPECT().Get(mock.Anything, "tasks").Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), "tasks")
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetFallsBackWhenPrimaryHasNoEntry(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "tasks").Return("", fmt.Errorf("entry %q: %w", "tasks", domain.ErrKeyNotFound)).Once()
	fallback.EXPECT().Get(mock.Anything, "tasks").Return("legacy", nil).Once()

	value, err := store.Get(context.Background(), "tasks")
	require.NoError(t, err)
	assert.Equal(t, "legacy", value)
}

func TestStoreGetReportsNotFoundOnlyWhenBothMiss(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "tasks").Return("", domain.ErrKeyNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, "tasks").Return("", domain.ErrKeyNotFound).Once()

	_, err := store.Get(context.Background(), "tasks")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreGetDoesNotMaskFallbackFailureAsNotFound(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "tasks").Return("", domain.ErrKeyNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, "tasks").Return("", errors.New("permission denied")).Once()

	_, err := store.Get(context.Background(), "tasks")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrKeyNotFound)
	assert.ErrorContains(t, err, "permission denied")
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "tasks").Return("", errors.New("toml failed")).Once()
	fallback.EXPECT().Get(mock.Anything, "tasks").Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), "tasks")
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "toml failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, "tasks", "A").Return(errors.New("toml failed")).Once()
	fallback.EXPECT().Put(mock.Anything, "tasks", "A").Return(nil).Once()

	err := store.Put(context.Background(), "tasks", "A")
	require.NoError(t, err)
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, "tasks", "A").Return(nil).Once()

	err := store.Put(context.Background(), "tasks", "A")
	require.NoError(t, err)
}

func TestStoreDeleteFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "tasks").Return(errors.New("toml failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, "tasks").Return(nil).Once()

	err := store.Delete(context.Background(), "tasks")
	require.NoError(t, err)
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockKeyValueStore(t)
	fallback := portmocks.NewMockKeyValueStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "tasks").Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), "tasks")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockKeyValueStore(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockKeyValueStore(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}

func TestTOMLFirstWithFileFallbackReadsLegacyEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	legacyRoot := filepath.Join(dir, "kv")
	require.NoError(t, os.MkdirAll(legacyRoot, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(legacyRoot, "tasks"), []byte("Buy milk,Call mom"), 0o600))

	store, err := NewTOMLFirstWithFileFallback(filepath.Join(dir, "tasks.toml"), legacyRoot)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), "tasks")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk,Call mom", got)

	require.NoError(t, store.Put(context.Background(), "tasks", "Buy milk"))
	got, err = store.Get(context.Background(), "tasks")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got)

	legacy, err := os.ReadFile(filepath.Join(legacyRoot, "tasks"))
	require.NoError(t, err)
	assert.Equal(t, "Buy milk,Call mom", string(legacy))
}
