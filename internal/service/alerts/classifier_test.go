package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fridgeagent/internal/config"
	"fridgeagent/internal/domain/models"
)

var defaultThresholds = config.AlertsConfig{ExpiringWindowDays: 3, LowStockThreshold: 1}

func newTestService() *Service {
	return NewService(nil, nil, defaultThresholds, nil)
}

func itemExpiring(id string, qty float64, expiry time.Time) models.Item {
	return models.Item{ID: id, Name: "Item " + id, Quantity: qty, Unit: "pcs", ExpiryDate: expiry}
}

func TestStatusOf_Boundaries(t *testing.T) {
	svc := newTestService()
	asOf := time.Date(2026, 5, 10, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, models.StatusExpiring, svc.StatusOf(itemExpiring("a", 5, asOf.AddDate(0, 0, 3)), asOf))
	assert.Equal(t, models.StatusFresh, svc.StatusOf(itemExpiring("b", 5, asOf.AddDate(0, 0, 4)), asOf))
	assert.Equal(t, models.StatusExpired, svc.StatusOf(itemExpiring("c", 5, asOf.AddDate(0, 0, -1)), asOf))
}

func TestStatusOf_SameCalendarDayIsExpiring(t *testing.T) {
	svc := newTestService()

	// asOf late in the evening, expiry early the same day: calendar dates
	// match, so 0 days left and still expiring rather than expired.
	asOf := time.Date(2026, 5, 10, 23, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, 5, 10, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, models.StatusExpiring, svc.StatusOf(itemExpiring("a", 5, expiry), asOf))
}

func TestClassify_ExpiredAndExpiringMutuallyExclusive(t *testing.T) {
	svc := newTestService()
	asOf := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	found := svc.Classify([]models.Item{
		itemExpiring("a", 5, asOf.AddDate(0, 0, -2)),
		itemExpiring("b", 5, asOf.AddDate(0, 0, 2)),
		itemExpiring("c", 5, asOf.AddDate(0, 0, 30)),
	}, asOf)

	assert.Len(t, found, 2)
	assert.Equal(t, "expired-a", found[0].ID)
	assert.Equal(t, models.AlertExpired, found[0].Category)
	assert.Equal(t, "expiring-b", found[1].ID)
	assert.Equal(t, models.AlertExpiring, found[1].Category)
}

func TestClassify_LowStockIndependentOfExpiry(t *testing.T) {
	svc := newTestService()
	asOf := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	// fresh item, quantity 0.5: low stock alert only
	found := svc.Classify([]models.Item{itemExpiring("a", 0.5, asOf.AddDate(0, 0, 60))}, asOf)

	assert.Len(t, found, 1)
	assert.Equal(t, "low-a", found[0].ID)
	assert.Equal(t, models.AlertLowStock, found[0].Category)
}

func TestClassify_SingleItemCanYieldTwoAlerts(t *testing.T) {
	svc := newTestService()
	asOf := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	milk := models.Item{ID: "m1", Name: "Milk", Quantity: 0.5, Unit: "gallons", ExpiryDate: asOf.AddDate(0, 0, 2)}
	found := svc.Classify([]models.Item{milk}, asOf)

	assert.Len(t, found, 2)
	assert.Equal(t, "expiring-m1", found[0].ID)
	assert.Equal(t, "low-m1", found[1].ID)
	assert.Equal(t, "Milk is expiring in 2 days. Try using it in a recipe!", found[0].Message)
	assert.Equal(t, "You're out of Milk. Add it to your shopping list?", found[1].Message)
}

func TestClassify_ExpiredMessageAndStableIDs(t *testing.T) {
	svc := newTestService()
	asOf := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	expired := models.Item{ID: "e1", Name: "Yogurt", Quantity: 2, Unit: "pcs", ExpiryDate: time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC)}

	first := svc.Classify([]models.Item{expired}, asOf)
	second := svc.Classify([]models.Item{expired}, asOf)

	assert.Equal(t, first, second)
	assert.Equal(t, "expired-e1", first[0].ID)
	assert.Equal(t, "Yogurt expired on 2026-05-08. You should probably discard it.", first[0].Message)
}

func TestClassify_KeepsInputOrder(t *testing.T) {
	svc := newTestService()
	asOf := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	found := svc.Classify([]models.Item{
		itemExpiring("z", 0.2, asOf.AddDate(0, 0, 60)),
		itemExpiring("a", 5, asOf.AddDate(0, 0, 1)),
	}, asOf)

	assert.Equal(t, []string{"low-z", "expiring-a"}, []string{found[0].ID, found[1].ID})
}

func TestClassify_EmptySnapshot(t *testing.T) {
	svc := newTestService()

	found := svc.Classify(nil, time.Now())

	assert.Empty(t, found)
}
