// Package memory provides a mutex-guarded in-memory implementation of the
// inventory repository. It backs the test suite and local development runs
// where no MongoDB instance is configured.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"fridgeagent/internal/domain/models"
	"fridgeagent/internal/repository"
)

// Repository stores items in a map guarded by a RWMutex. Every mutation runs
// through a single exclusive-access path.
type Repository struct {
	mu      sync.RWMutex
	items   map[string]models.Item
	digests []models.AlertDigest
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		items: make(map[string]models.Item),
	}
}

// ListItems returns all items sorted by expiry date ascending, id ascending.
func (r *Repository) ListItems(ctx context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sortItems(items)
	return items, nil
}

// GetItem fetches a single item by id.
func (r *Repository) GetItem(ctx context.Context, id string) (models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return models.Item{}, repository.ErrItemNotFound
	}
	return item, nil
}

// InsertItem stores a new item.
func (r *Repository) InsertItem(ctx context.Context, item models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

// ReplaceItem overwrites the stored item with the same id.
func (r *Repository) ReplaceItem(ctx context.Context, item models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return repository.ErrItemNotFound
	}
	r.items[item.ID] = item
	return nil
}

// DeleteItem removes an item by id.
func (r *Repository) DeleteItem(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

// SearchItemsByName returns items whose name contains the fragment,
// case-insensitively, in the usual expiry sort order.
func (r *Repository) SearchItemsByName(ctx context.Context, fragment string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(fragment)
	matches := []models.Item{}
	for _, item := range r.items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			matches = append(matches, item)
		}
	}
	sortItems(matches)
	return matches, nil
}

// SaveAlertDigest appends a digest entry.
func (r *Repository) SaveAlertDigest(ctx context.Context, digest models.AlertDigest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.digests = append(r.digests, digest)
	return nil
}

// Digests returns the accumulated digest entries.
func (r *Repository) Digests() []models.AlertDigest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.AlertDigest, len(r.digests))
	copy(out, r.digests)
	return out
}

func sortItems(items []models.Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].ExpiryDate.Equal(items[j].ExpiryDate) {
			return items[i].ID < items[j].ID
		}
		return items[i].ExpiryDate.Before(items[j].ExpiryDate)
	})
}
