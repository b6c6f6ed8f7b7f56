package inventory

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"fridgeagent/internal/domain/models"
	"fridgeagent/pkg/units"
)

// ConsumeByName deducts amount from the first item matching name. A missing
// match is a soft outcome, not an error: item names arrive from imprecise
// natural language and the caller should degrade gracefully.
func (s *Service) ConsumeByName(ctx context.Context, name string, amount float64) (models.ConsumeOutcome, error) {
	item, err := s.FindByNameFuzzy(ctx, name)
	if errors.Is(err, ErrNotFound) {
		s.logger.Debug("consume skipped, no match", zap.String("name", name))
		return models.ConsumeOutcome{Matched: false}, nil
	}
	if err != nil {
		return models.ConsumeOutcome{}, err
	}

	item.Quantity = clampQuantity(item.Quantity - amount)
	item.LastUpdated = s.now().UTC()

	if err := s.repo.ReplaceItem(ctx, item); err != nil {
		return models.ConsumeOutcome{}, s.translate(err)
	}

	s.logger.Info("item consumed",
		zap.String("id", item.ID),
		zap.String("name", item.Name),
		zap.Float64("amount", amount),
		zap.Float64("remaining", item.Quantity))

	return models.ConsumeOutcome{
		Matched:   true,
		ItemID:    item.ID,
		ItemName:  item.Name,
		Remaining: item.Quantity,
		Unit:      item.Unit,
	}, nil
}

// DeductForRecipe applies one recipe-cooking event: each ingredient is looked
// up independently, converted into the stored unit and deducted with the zero
// floor. Unmatched ingredients are skipped and omitted from the results. The
// batch is not atomic; deductions committed before a persistence failure stay
// committed.
func (s *Service) DeductForRecipe(ctx context.Context, ingredients []models.IngredientUsage) ([]models.DeductionResult, error) {
	results := []models.DeductionResult{}

	for _, ing := range ingredients {
		item, err := s.FindByNameFuzzy(ctx, ing.Name)
		if errors.Is(err, ErrNotFound) {
			s.logger.Debug("deduct skipped, no pantry match", zap.String("ingredient", ing.Name))
			continue
		}
		if err != nil {
			return results, err
		}

		deduction := units.Convert(ing.AmountUsed, ing.Unit, item.Unit)
		item.Quantity = clampQuantity(item.Quantity - deduction)
		item.LastUpdated = s.now().UTC()

		if err := s.repo.ReplaceItem(ctx, item); err != nil {
			return results, s.translate(err)
		}

		results = append(results, models.DeductionResult{
			Name:      item.Name,
			Remaining: roundTwoDecimals(item.Quantity),
			Unit:      item.Unit,
		})
	}

	return results, nil
}

func roundTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
