package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fridgeagent/internal/domain/models"
	"fridgeagent/internal/repository"
)

// ErrValidation indicates a draft is missing a required field.
var ErrValidation = errors.New("invalid item payload")

// ErrNotFound indicates the referenced item does not exist. Delete of a
// missing id is a hard failure, not a no-op.
var ErrNotFound = errors.New("item not found")

// Service owns the authoritative inventory: CRUD, fuzzy lookup and the
// consumption operations. Every mutator keeps quantity >= 0 by clamping and
// refreshes the item's last-updated timestamp.
type Service struct {
	repo   repository.Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService constructs an inventory service.
func NewService(repo repository.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns all items sorted by expiry date ascending.
func (s *Service) List(ctx context.Context) ([]models.Item, error) {
	return s.repo.ListItems(ctx)
}

// Add validates the draft, assigns an id and stores the new item.
func (s *Service) Add(ctx context.Context, draft models.ItemDraft) (models.Item, error) {
	if draft.Name == "" {
		return models.Item{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if draft.Quantity == nil {
		return models.Item{}, fmt.Errorf("%w: quantity is required", ErrValidation)
	}
	if draft.ExpiryDate == nil {
		return models.Item{}, fmt.Errorf("%w: expiry_date is required", ErrValidation)
	}

	now := s.now().UTC()
	item := models.Item{
		ID:          s.newID(),
		Name:        draft.Name,
		Quantity:    clampQuantity(*draft.Quantity),
		Unit:        draft.Unit,
		AddedDate:   now,
		ExpiryDate:  *draft.ExpiryDate,
		LastUpdated: now,
		Notes:       draft.Notes,
	}

	if err := s.repo.InsertItem(ctx, item); err != nil {
		return models.Item{}, err
	}

	s.logger.Debug("item added",
		zap.String("id", item.ID),
		zap.String("name", item.Name),
		zap.Float64("quantity", item.Quantity))

	return item, nil
}

// Update applies the supplied fields to an existing item and refreshes its
// last-updated timestamp.
func (s *Service) Update(ctx context.Context, id string, update models.ItemUpdate) (models.Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return models.Item{}, s.translate(err)
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Quantity != nil {
		item.Quantity = clampQuantity(*update.Quantity)
	}
	if update.Unit != nil {
		item.Unit = *update.Unit
	}
	if update.ExpiryDate != nil {
		item.ExpiryDate = *update.ExpiryDate
	}
	if update.Notes != nil {
		item.Notes = *update.Notes
	}
	item.LastUpdated = s.now().UTC()

	if err := s.repo.ReplaceItem(ctx, item); err != nil {
		return models.Item{}, s.translate(err)
	}
	return item, nil
}

// Delete removes an item by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return s.translate(err)
	}
	return nil
}

// FindByNameFuzzy resolves a natural-language item reference via
// case-insensitive substring match. When several items match, the first by
// expiry ascending (then id) wins; ambiguity is not reported.
func (s *Service) FindByNameFuzzy(ctx context.Context, fragment string) (models.Item, error) {
	matches, err := s.repo.SearchItemsByName(ctx, fragment)
	if err != nil {
		return models.Item{}, err
	}
	if len(matches) == 0 {
		return models.Item{}, ErrNotFound
	}
	return matches[0], nil
}

func (s *Service) translate(err error) error {
	if errors.Is(err, repository.ErrItemNotFound) {
		return ErrNotFound
	}
	return err
}

func clampQuantity(q float64) float64 {
	if q < 0 {
		return 0
	}
	return q
}
