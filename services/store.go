package services

import (
	"context"
	"sync"

	"penpals_server/models"
)

// Store is a durable backend for the whole penpals document. Implementations
// must make Load and Save atomic with respect to each other; everything finer
// grained is handled by StoreHandle.
type Store interface {
	Load(ctx context.Context) (*models.Database, error)
	Save(ctx context.Context, db *models.Database) error
}

// StoreHandle owns a Store and serializes every read-modify-write cycle
// behind a mutex, so two concurrent requests cannot interleave between load
// and save.
type StoreHandle struct {
	store Store
	mu    sync.Mutex
}

func NewStoreHandle(store Store) *StoreHandle {
	return &StoreHandle{store: store}
}

// View loads a snapshot and runs fn against it. Nothing is persisted.
func (h *StoreHandle) View(ctx context.Context, fn func(db *models.Database) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	db, err := h.store.Load(ctx)
	if err != nil {
		return err
	}
	return fn(db)
}

// Update loads a snapshot, runs fn, and persists when fn reports a mutation.
// A failed save takes precedence over fn's error: callers must not treat the
// operation as committed unless Update returns the domain error alone.
func (h *StoreHandle) Update(ctx context.Context, fn func(db *models.Database) (dirty bool, err error)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	db, err := h.store.Load(ctx)
	if err != nil {
		return err
	}

	dirty, fnErr := fn(db)
	if dirty {
		if err := h.store.Save(ctx, db); err != nil {
			return err
		}
	}
	return fnErr
}
