package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBlankTitle         = errors.New("task title is blank")
	ErrPositionOutOfRange = errors.New("task position out of range")
	ErrKeyNotFound        = errors.New("key not found")
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
	ErrUnknownTheme       = errors.New("unknown theme")
)

// StorageError reports a failed read or write of the persisted task list.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s tasks %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
