// Package catalog provides the interface for catalog snapshot persistence
package catalog

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/wildforge/gearsolver/internal/repositories/catalog Repository

import (
	"context"

	"github.com/wildforge/gearsolver/internal/entities/gear"
)

// DefaultSnapshotID is used when the caller does not pin a specific snapshot
const DefaultSnapshotID = "current"

// Repository defines the interface for catalog snapshot persistence.
// A snapshot is one immutable catalog version; solves always run against a
// whole snapshot, never against individual entities.
type Repository interface {
	// GetSnapshot retrieves a stored catalog snapshot
	// Returns errors.InvalidArgument for an empty snapshot ID
	// Returns errors.NotFound if no snapshot exists under the ID
	// Returns errors.Internal for storage failures
	GetSnapshot(ctx context.Context, input GetSnapshotInput) (*GetSnapshotOutput, error)

	// PutSnapshot stores a catalog snapshot, replacing any previous version
	// under the same ID
	// Returns errors.InvalidArgument for a nil or inconsistent catalog
	// Returns errors.Internal for storage failures
	PutSnapshot(ctx context.Context, input PutSnapshotInput) (*PutSnapshotOutput, error)
}

// GetSnapshotInput defines the input for fetching a snapshot
type GetSnapshotInput struct {
	// SnapshotID selects the snapshot; empty means DefaultSnapshotID
	SnapshotID string
}

// GetSnapshotOutput defines the output for fetching a snapshot
type GetSnapshotOutput struct {
	SnapshotID string
	Catalog    *gear.Catalog
}

// PutSnapshotInput defines the input for storing a snapshot
type PutSnapshotInput struct {
	// SnapshotID names the snapshot; empty means DefaultSnapshotID
	SnapshotID string
	Catalog    *gear.Catalog
}

// PutSnapshotOutput defines the output for storing a snapshot
type PutSnapshotOutput struct {
	SnapshotID string
}
