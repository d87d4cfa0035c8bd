package tasklist

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/roach88/tasklist/internal/task"
)

// DefaultKey is the storage key the task blob is written under.
const DefaultKey = "tasks"

// Slots is the key-value storage the store persists through.
// Implemented by store.Store, secure.Vault and testutil.MemorySlots.
type Slots interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Store loads, mutates and saves the task list.
type Store struct {
	slots  Slots
	key    string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key. Default: DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store persisting through slots.
func New(slots Slots, opts ...Option) *Store {
	s := &Store{
		slots: slots,
		key:   DefaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.logger = s.logger.With("key", s.key)
	return s
}

// Key returns the storage key the list is persisted under.
func (s *Store) Key() string {
	return s.key
}

// Initialize hydrates the list from storage. It never fails: a missing blob
// yields an empty list, and a corrupt or unreadable blob yields an empty
// list plus a logged warning.
func (s *Store) Initialize(ctx context.Context) task.List {
	list, found, err := s.Load(ctx)
	if err != nil {
		if task.IsCorruptState(err) {
			s.logger.Warn("corrupt task blob, starting with empty list", "error", err)
		} else {
			s.logger.Warn("could not load tasks, starting with empty list", "error", err)
		}
		return task.List{}
	}
	if !found {
		s.logger.Debug("no saved tasks")
		return task.List{}
	}

	s.logger.Info("tasks loaded", "count", len(list))
	return list
}

// Load reads and decodes the persisted list. found is false if nothing was
// ever saved. A malformed blob returns a CorruptStateError and no list.
func (s *Store) Load(ctx context.Context) (list task.List, found bool, err error) {
	blob, found, err := s.slots.Get(ctx, s.key)
	if err != nil {
		return nil, false, &task.PersistenceError{Op: "load", Key: s.key, Err: err}
	}
	if !found {
		return nil, false, nil
	}

	list, err = task.Decode(blob)
	if err != nil {
		var ce *task.CorruptStateError
		if errors.As(err, &ce) {
			ce.Key = s.key
		}
		return nil, true, err
	}
	return list, true, nil
}

// Save writes the full list, replacing any previous blob. On failure the
// previous blob is left as it was and a PersistenceError is returned.
func (s *Store) Save(ctx context.Context, list task.List) error {
	blob, err := task.Encode(list)
	if err != nil {
		s.logger.Error("save failed", "error", err)
		return &task.PersistenceError{Op: "save", Key: s.key, Err: err}
	}

	if err := s.slots.Set(ctx, s.key, blob); err != nil {
		s.logger.Error("save failed", "error", err)
		return &task.PersistenceError{Op: "save", Key: s.key, Err: err}
	}

	s.logger.Debug("tasks saved", "count", len(list))
	return nil
}
