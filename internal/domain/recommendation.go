package domain

type MealBudget struct {
	Slot       Slot    `json:"slot"`
	Proportion float64 `json:"proportion"`
	Calories   int     `json:"calories"`
}

// ComboResult is one recommended serving: a main and at most one dessert.
type ComboResult struct {
	Items         []FoodItem `json:"items"`
	TotalCalories int        `json:"totalCalorie"`
}

// Main returns the combo's main dish, if any.
func (c *ComboResult) Main() (FoodItem, bool) {
	if c == nil || len(c.Items) == 0 {
		return FoodItem{}, false
	}
	return c.Items[0], true
}

// SlotRecommendation holds two options; a nil option means no combo was possible.
type SlotRecommendation struct {
	Budget  int             `json:"budget"`
	Options [2]*ComboResult `json:"options"`
}

type Recommendation map[Slot]SlotRecommendation
