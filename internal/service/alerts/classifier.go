package alerts

import (
	"fmt"
	"time"

	"fridgeagent/internal/domain/models"
)

const dateLayout = "2006-01-02"

// StatusOf derives the freshness status of an item as of the given date.
// Day arithmetic uses calendar dates, not elapsed 24-hour periods: an item
// expiring on the same calendar day as asOf has 0 days left and is expiring.
func (s *Service) StatusOf(item models.Item, asOf time.Time) models.ExpiryStatus {
	daysLeft := daysUntil(item.ExpiryDate, asOf)
	switch {
	case daysLeft < 0:
		return models.StatusExpired
	case daysLeft <= s.expiringWindowDays:
		return models.StatusExpiring
	default:
		return models.StatusFresh
	}
}

// Classify derives alerts from a snapshot of items. Each item yields at most
// one expired-or-expiring alert, plus an independent low-stock alert when its
// quantity is below the threshold. Output keeps the input item order.
func (s *Service) Classify(items []models.Item, asOf time.Time) []models.Alert {
	out := []models.Alert{}

	for _, item := range items {
		daysLeft := daysUntil(item.ExpiryDate, asOf)

		if daysLeft < 0 {
			out = append(out, models.Alert{
				ID:       fmt.Sprintf("expired-%s", item.ID),
				Category: models.AlertExpired,
				ItemID:   item.ID,
				ItemName: item.Name,
				Message:  fmt.Sprintf("%s expired on %s. You should probably discard it.", item.Name, item.ExpiryDate.Format(dateLayout)),
			})
		} else if daysLeft <= s.expiringWindowDays {
			out = append(out, models.Alert{
				ID:       fmt.Sprintf("expiring-%s", item.ID),
				Category: models.AlertExpiring,
				ItemID:   item.ID,
				ItemName: item.Name,
				Message:  fmt.Sprintf("%s is expiring in %d days. Try using it in a recipe!", item.Name, daysLeft),
			})
		}

		if item.Quantity < s.lowStockThreshold {
			out = append(out, models.Alert{
				ID:       fmt.Sprintf("low-%s", item.ID),
				Category: models.AlertLowStock,
				ItemID:   item.ID,
				ItemName: item.Name,
				Message:  fmt.Sprintf("You're out of %s. Add it to your shopping list?", item.Name),
			})
		}
	}

	return out
}

func daysUntil(expiry, asOf time.Time) int {
	e := midnightUTC(expiry)
	a := midnightUTC(asOf)
	return int(e.Sub(a).Hours() / 24)
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
