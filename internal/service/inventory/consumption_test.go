package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgeagent/internal/domain/models"
)

func usage(name string, amount float64, unit string) models.IngredientUsage {
	return models.IngredientUsage{Name: name, AmountUsed: amount, Unit: unit}
}

func TestConsumeByName_DeductsAndReports(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), draft("Eggs", 12, "pcs", baseTime.AddDate(0, 0, 14)))
	require.NoError(t, err)

	outcome, err := svc.ConsumeByName(context.Background(), "eggs", 2)

	require.NoError(t, err)
	assert.True(t, outcome.Matched)
	assert.Equal(t, "Eggs", outcome.ItemName)
	assert.Equal(t, 10.0, outcome.Remaining)
	assert.Equal(t, "pcs", outcome.Unit)
}

func TestConsumeByName_FloorsAtZero(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), draft("Eggs", 3, "pcs", baseTime.AddDate(0, 0, 14)))
	require.NoError(t, err)

	outcome, err := svc.ConsumeByName(context.Background(), "eggs", 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, outcome.Remaining)

	// repeated consumption never drives quantity below zero
	outcome, err = svc.ConsumeByName(context.Background(), "eggs", 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, outcome.Remaining)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, items[0].Quantity)
}

func TestConsumeByName_NoMatchIsSoft(t *testing.T) {
	svc, _ := newTestService()

	outcome, err := svc.ConsumeByName(context.Background(), "unicorn steaks", 1)

	require.NoError(t, err)
	assert.False(t, outcome.Matched)
}

func TestConsumeByName_RefreshesLastUpdated(t *testing.T) {
	svc, now := newTestService()

	_, err := svc.Add(context.Background(), draft("Eggs", 12, "pcs", baseTime.AddDate(0, 0, 14)))
	require.NoError(t, err)

	*now = baseTime.Add(time.Hour)
	_, err = svc.ConsumeByName(context.Background(), "eggs", 1)
	require.NoError(t, err)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, baseTime.Add(time.Hour), items[0].LastUpdated)
}

func TestDeductForRecipe_ConvertsUnits(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), draft("Milk", 1, "gallons", baseTime.AddDate(0, 0, 2)))
	require.NoError(t, err)

	// 8 cups = 0.5 gallons
	results, err := svc.DeductForRecipe(context.Background(), []models.IngredientUsage{usage("Milk", 8, "cups")})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Milk", results[0].Name)
	assert.Equal(t, 0.5, results[0].Remaining)
	assert.Equal(t, "gallons", results[0].Unit)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.5, items[0].Quantity)
}

func TestDeductForRecipe_UnknownUnitPairUsedAsIs(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), draft("Flour", 5, "cups", baseTime.AddDate(0, 0, 60)))
	require.NoError(t, err)

	results, err := svc.DeductForRecipe(context.Background(), []models.IngredientUsage{usage("Flour", 2, "scoops")})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 3.0, results[0].Remaining)
}

func TestDeductForRecipe_RoundsRemainingToTwoDecimals(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), draft("Flour", 1, "kilograms", baseTime.AddDate(0, 0, 60)))
	require.NoError(t, err)

	results, err := svc.DeductForRecipe(context.Background(), []models.IngredientUsage{usage("Flour", 333, "grams")})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0.67, results[0].Remaining)
}

func TestDeductForRecipe_SkipsUnmatchedIngredients(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), draft("Milk", 1, "gallons", baseTime.AddDate(0, 0, 2)))
	require.NoError(t, err)

	results, err := svc.DeductForRecipe(context.Background(), []models.IngredientUsage{
		usage("saffron", 1, "grams"),
		usage("Milk", 4, "cups"),
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Milk", results[0].Name)
	assert.Equal(t, 0.75, results[0].Remaining)
}

func TestDeductForRecipe_FloorsAtZero(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), draft("Milk", 0.25, "gallons", baseTime.AddDate(0, 0, 2)))
	require.NoError(t, err)

	results, err := svc.DeductForRecipe(context.Background(), []models.IngredientUsage{usage("Milk", 16, "cups")})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].Remaining)
}
