package domain

import "time"

// LoggedFood is a catalog snapshot taken when the meal was logged.
type LoggedFood struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Calories float64  `json:"calories"`
}

type MealLogEntry struct {
	UserID        string       `json:"userId"`
	Date          string       `json:"date"`
	Slot          Slot         `json:"mealType"`
	Foods         []LoggedFood `json:"foods"`
	TotalCalories float64      `json:"totalCalories"`
	LoggedAt      time.Time    `json:"loggedAt"`
}

// Key is the composite day+slot key, e.g. "2025-12-08#lunch".
func (e MealLogEntry) Key() string {
	return e.Date + "#" + string(e.Slot)
}

type MealLogInput struct {
	Meal  Slot         `json:"meal"`
	Foods []LoggedFood `json:"foods"`
}

type LogMealsRequest struct {
	Logs []MealLogInput `json:"logs"`
}

type DayHistory struct {
	Date          string        `json:"date"`
	DisplayDate   string        `json:"displayDate"`
	TotalCalories float64       `json:"totalCalories"`
	Meals         []MealSummary `json:"meals"`
}

type MealSummary struct {
	MealType  Slot   `json:"mealType"`
	Calories  int    `json:"calories"`
	FoodCount int    `json:"foodCount"`
	FoodNames string `json:"foodNames"`
}
