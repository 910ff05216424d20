package domain

type Category string

const (
	CategoryMain    Category = "main"
	CategoryDessert Category = "dessert"
)

type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
)

// Slots lists the meal slots in serving order.
var Slots = []Slot{SlotBreakfast, SlotLunch, SlotDinner}

func (s Slot) Valid() bool {
	return s == SlotBreakfast || s == SlotLunch || s == SlotDinner
}

type MealEligibility struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
}

func (m MealEligibility) Allows(s Slot) bool {
	switch s {
	case SlotBreakfast:
		return m.Breakfast
	case SlotLunch:
		return m.Lunch
	case SlotDinner:
		return m.Dinner
	}
	return false
}

type FoodItem struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Category           Category        `json:"category"`
	Calories           float64         `json:"calories"`
	Meals              MealEligibility `json:"meals"`
	RestrictedDiseases []string        `json:"restrictedDiseases"`
}

func (f FoodItem) RestrictedFor(disease string) bool {
	for _, d := range f.RestrictedDiseases {
		if d == disease {
			return true
		}
	}
	return false
}
