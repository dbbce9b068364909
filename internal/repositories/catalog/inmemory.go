package catalog

import (
	"context"
	"sync"

	"github.com/wildforge/gearsolver/internal/entities/gear"
	"github.com/wildforge/gearsolver/internal/errors"
)

// inMemoryRepository keeps snapshots in a map. Used by the CLI when running
// against a catalog file, and by tests.
type inMemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*gear.Catalog
}

// NewInMemory creates an empty in-memory catalog repository
func NewInMemory() Repository {
	return &inMemoryRepository{
		snapshots: make(map[string]*gear.Catalog),
	}
}

func (r *inMemoryRepository) GetSnapshot(_ context.Context, input GetSnapshotInput) (*GetSnapshotOutput, error) {
	id := input.SnapshotID
	if id == "" {
		id = DefaultSnapshotID
	}

	r.mu.RLock()
	c, ok := r.snapshots[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("catalog snapshot %q not found", id)
	}

	return &GetSnapshotOutput{
		SnapshotID: id,
		Catalog:    c,
	}, nil
}

func (r *inMemoryRepository) PutSnapshot(_ context.Context, input PutSnapshotInput) (*PutSnapshotOutput, error) {
	if input.Catalog == nil {
		return nil, errors.InvalidArgument("catalog cannot be nil")
	}
	if err := input.Catalog.Validate(); err != nil {
		return nil, err
	}

	id := input.SnapshotID
	if id == "" {
		id = DefaultSnapshotID
	}

	r.mu.Lock()
	r.snapshots[id] = input.Catalog
	r.mu.Unlock()

	return &PutSnapshotOutput{SnapshotID: id}, nil
}
