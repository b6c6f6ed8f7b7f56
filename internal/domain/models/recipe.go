package models

// IngredientUsage describes one ingredient consumed while cooking a recipe.
// Unit may differ from the unit of the matching pantry item.
type IngredientUsage struct {
	Name       string  `json:"name"`
	AmountUsed float64 `json:"amount_used"`
	Unit       string  `json:"unit"`
}

// Recipe is a suggestion produced by the AI collaborator from the current
// pantry snapshot.
type Recipe struct {
	Name            string            `json:"name"`
	CookTimeMinutes int               `json:"cook_time_minutes"`
	Ingredients     []IngredientUsage `json:"ingredients"`
	Instructions    []string          `json:"instructions,omitempty"`
}

// DeductionResult reports the post-deduction state for one matched ingredient
// of a recipe batch. Ingredients without a pantry match are omitted.
type DeductionResult struct {
	Name      string  `json:"name"`
	Remaining float64 `json:"remaining"`
	Unit      string  `json:"unit"`
}
