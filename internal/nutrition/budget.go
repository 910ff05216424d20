package nutrition

import "github.com/foodmind/foodmind-backend/internal/domain"

// mealShares splits the daily target across slots, in percent. Sums to 100.
var mealShares = map[domain.Slot]int{
	domain.SlotBreakfast: 30,
	domain.SlotLunch:     40,
	domain.SlotDinner:    30,
}

// BudgetFor returns the calorie ceiling of one slot, floored to an integer.
func BudgetFor(tdee int, slot domain.Slot) domain.MealBudget {
	pct := mealShares[slot]
	return domain.MealBudget{
		Slot:       slot,
		Proportion: float64(pct) / 100,
		Calories:   floorDiv(tdee*pct, 100),
	}
}

// Ceiling is the unrounded calorie ceiling of one slot. Combos are fitted
// against it, while budgets are reported floored.
func Ceiling(tdee int, slot domain.Slot) float64 {
	return float64(tdee*mealShares[slot]) / 100
}

// Allocate returns the budgets of every slot in serving order.
func Allocate(tdee int) []domain.MealBudget {
	budgets := make([]domain.MealBudget, 0, len(domain.Slots))
	for _, s := range domain.Slots {
		budgets = append(budgets, BudgetFor(tdee, s))
	}
	return budgets
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
