package ports

import "context"

// KeyValueStore is the durable storage the task list is persisted to.
// Get reports a missing key with an error wrapping domain.ErrKeyNotFound.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
