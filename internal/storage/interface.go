package storage

import (
	"context"

	"github.com/padelmixer/padelmixer-admin/internal/model"
)

// Storage is the backing store of the player directory. Every returned player
// is a fresh copy the caller may keep or modify.
type Storage interface {
	// FetchAll returns every player in ascending id order
	FetchAll(ctx context.Context) ([]model.Player, error)

	// FetchOne returns model.ErrPlayerNotFound when id is unknown
	FetchOne(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Create assigns the next id, stamps the registration time and marks the player active
	Create(ctx context.Context, form model.PlayerForm) (*model.Player, error)

	// Update merges patch into the stored player
	Update(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error)

	// Delete checks existence first, then dependents. A referenced player
	// yields *model.DeleteRestrictionError and is kept.
	Delete(ctx context.Context, id model.PlayerID) error
}

// DependencyLookup reports what else in the system references a player
type DependencyLookup interface {
	Dependencies(ctx context.Context, id model.PlayerID) (model.Dependencies, error)
}
