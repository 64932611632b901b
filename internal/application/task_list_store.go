package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/task-list-cli/internal/domain"
	"github.com/bnema/task-list-cli/internal/ports"
)

const DefaultTasksKey = "tasks"

type Option func(*TaskListStore)

func WithKey(key string) Option {
	return func(s *TaskListStore) {
		if key != "" {
			s.key = key
		}
	}
}

// TaskListStore owns the ordered task list and writes its encoded form to the
// key-value store after every mutation. Mutations apply to memory first and
// are rolled back when the write fails.
type TaskListStore struct {
	kv  ports.KeyValueStore
	key string

	// writeMu serializes mutators for the whole apply-persist-rollback cycle.
	writeMu sync.Mutex
	mu      sync.RWMutex
	tasks   domain.TaskList
}

func NewTaskListStore(kv ports.KeyValueStore, opts ...Option) *TaskListStore {
	s := &TaskListStore{
		kv:    kv,
		key:   DefaultTasksKey,
		tasks: domain.TaskList{},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *TaskListStore) Key() string {
	return s.key
}

func (s *TaskListStore) Tasks() domain.TaskList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tasks.Clone()
}

func (s *TaskListStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}

// Load replaces the in-memory list with the persisted one. A missing key is
// the first-run state and yields an empty list.
func (s *TaskListStore) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			return &domain.StorageError{Op: "load", Key: s.key, Err: err}
		}
		raw = ""
	}

	s.mu.Lock()
	s.tasks = domain.Decode(raw)
	s.mu.Unlock()

	return nil
}

func (s *TaskListStore) Add(ctx context.Context, title string) error {
	if domain.IsBlankTitle(title) {
		return domain.ErrBlankTitle
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	previous := s.apply(func(current domain.TaskList) domain.TaskList {
		return append(current, domain.Task(title))
	})

	return s.persist(ctx, previous)
}

// Remove deletes the task at the 0-based position.
func (s *TaskListStore) Remove(ctx context.Context, position int) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	length := s.Len()
	if position < 0 || position >= length {
		return fmt.Errorf("%w: position %d, length %d", domain.ErrPositionOutOfRange, position, length)
	}

	previous := s.apply(func(current domain.TaskList) domain.TaskList {
		return append(current[:position], current[position+1:]...)
	})

	return s.persist(ctx, previous)
}

// apply swaps in the mutated list and returns the list it replaced. mutate
// receives a private copy.
func (s *TaskListStore) apply(mutate func(domain.TaskList) domain.TaskList) domain.TaskList {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.tasks
	s.tasks = mutate(previous.Clone())
	return previous
}

func (s *TaskListStore) persist(ctx context.Context, previous domain.TaskList) error {
	encoded := domain.Encode(s.Tasks())

	if err := s.kv.Put(ctx, s.key, encoded); err != nil {
		s.mu.Lock()
		s.tasks = previous
		s.mu.Unlock()

		return &domain.StorageError{Op: "save", Key: s.key, Err: err}
	}

	return nil
}
