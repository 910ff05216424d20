package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/foodmind/foodmind-backend/internal/domain"
	"github.com/foodmind/foodmind-backend/internal/nutrition"
)

const historyDays = 7

type MealLogService struct {
	logs LogStore
	now  func() time.Time
}

func NewMealLogService(logs LogStore) *MealLogService {
	return &MealLogService{logs: logs, now: time.Now}
}

// Log stores one entry per slot for today, replacing earlier entries for
// the same slot. Slots without foods are skipped. Returns the saved count.
func (s *MealLogService) Log(ctx context.Context, userID string, req domain.LogMealsRequest) (int, error) {
	if userID == "" || len(req.Logs) == 0 {
		return 0, ErrInvalidInput
	}
	for _, in := range req.Logs {
		if !in.Meal.Valid() {
			return 0, fmt.Errorf("%w: unknown meal %q", ErrInvalidInput, in.Meal)
		}
		for _, f := range in.Foods {
			if f.Calories < 0 {
				return 0, fmt.Errorf("%w: %s: calories must not be negative", ErrInvalidInput, f.Name)
			}
		}
	}

	now := s.now()
	today := nutrition.DateKey(now)

	saved := 0
	for _, in := range req.Logs {
		if len(in.Foods) == 0 {
			continue
		}
		var total float64
		for _, f := range in.Foods {
			total += f.Calories
		}
		entry := &domain.MealLogEntry{
			UserID:        userID,
			Date:          today,
			Slot:          in.Meal,
			Foods:         in.Foods,
			TotalCalories: total,
			LoggedAt:      now.UTC(),
		}
		if err := s.logs.Put(ctx, entry); err != nil {
			return saved, upstream("save meal log "+entry.Key(), err)
		}
		saved++
	}
	return saved, nil
}

// History groups the last seven days of logs by date, newest first.
func (s *MealLogService) History(ctx context.Context, userID string) ([]domain.DayHistory, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	now := s.now()
	entries, err := s.logs.ListByDateRange(ctx, userID, nutrition.DateKeyDaysAgo(now, historyDays-1), nutrition.DateKey(now))
	if err != nil {
		return nil, upstream("list meal logs", err)
	}

	byDate := map[string]*domain.DayHistory{}
	for _, e := range entries {
		day, ok := byDate[e.Date]
		if !ok {
			day = &domain.DayHistory{Date: e.Date, DisplayDate: displayDate(e.Date), Meals: []domain.MealSummary{}}
			byDate[e.Date] = day
		}
		day.TotalCalories += e.TotalCalories

		names := make([]string, 0, len(e.Foods))
		for _, f := range e.Foods {
			names = append(names, f.Name)
		}
		day.Meals = append(day.Meals, domain.MealSummary{
			MealType:  e.Slot,
			Calories:  int(e.TotalCalories),
			FoodCount: len(e.Foods),
			FoodNames: strings.Join(names, ", "),
		})
	}

	days := make([]domain.DayHistory, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	slices.SortFunc(days, func(a, b domain.DayHistory) int {
		return strings.Compare(b.Date, a.Date)
	})
	return days, nil
}

func displayDate(date string) string {
	t, err := time.Parse(nutrition.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
