// Package repository defines the persistence contract shared by the MongoDB
// and in-memory inventory stores.
package repository

import (
	"context"
	"errors"

	"fridgeagent/internal/domain/models"
)

// ErrItemNotFound indicates a point lookup, replace or delete targeted an id
// that does not exist.
var ErrItemNotFound = errors.New("item not found")

// Repository is the storage surface required by the inventory services.
// Enumerations are sorted by expiry date ascending, then id ascending, so
// callers relying on "first match" semantics get a deterministic record.
type Repository interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	GetItem(ctx context.Context, id string) (models.Item, error)
	InsertItem(ctx context.Context, item models.Item) error
	ReplaceItem(ctx context.Context, item models.Item) error
	DeleteItem(ctx context.Context, id string) error
	SearchItemsByName(ctx context.Context, fragment string) ([]models.Item, error)
	SaveAlertDigest(ctx context.Context, digest models.AlertDigest) error
}
