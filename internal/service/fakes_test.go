package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/foodmind/foodmind-backend/internal/domain"
	"github.com/foodmind/foodmind-backend/internal/nutrition"
)

var errStoreDown = errors.New("store down")

// fixedClock returns a clock that always returns the same time.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// at builds a UTC+7 wall-clock time.
func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, nutrition.Location)
}

type memProfiles struct {
	byID map[string]domain.UserProfile
	err  error
}

func newMemProfiles(profiles ...domain.UserProfile) *memProfiles {
	m := &memProfiles{byID: map[string]domain.UserProfile{}}
	for _, p := range profiles {
		m.byID[p.ID] = p
	}
	return m
}

func (m *memProfiles) GetByID(_ context.Context, userID string) (*domain.UserProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.byID[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memProfiles) Upsert(_ context.Context, p *domain.UserProfile) error {
	if m.err != nil {
		return m.err
	}
	m.byID[p.ID] = *p
	return nil
}

type memHistory struct {
	entries []domain.MetricHistoryEntry
	err     error
}

func (m *memHistory) Append(_ context.Context, e *domain.MetricHistoryEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memHistory) ListByUserID(_ context.Context, userID string) ([]domain.MetricHistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.MetricHistoryEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memLogs struct {
	byKey     map[string]domain.MealLogEntry
	err       error
	lastRange [2]string
}

func newMemLogs(entries ...domain.MealLogEntry) *memLogs {
	m := &memLogs{byKey: map[string]domain.MealLogEntry{}}
	for _, e := range entries {
		m.byKey[e.UserID+"|"+e.Key()] = e
	}
	return m
}

func (m *memLogs) ListByDateRange(_ context.Context, userID, from, to string) ([]domain.MealLogEntry, error) {
	m.lastRange = [2]string{from, to}
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.MealLogEntry
	for _, e := range m.byKey {
		if e.UserID == userID && e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

func (m *memLogs) Put(_ context.Context, e *domain.MealLogEntry) error {
	if m.err != nil {
		return m.err
	}
	m.byKey[e.UserID+"|"+e.Key()] = *e
	return nil
}

type memCatalog struct {
	foods []domain.FoodItem
	err   error
}

func (m *memCatalog) ListAll(context.Context) ([]domain.FoodItem, error) {
	return m.foods, m.err
}

var allMeals = domain.MealEligibility{Breakfast: true, Lunch: true, Dinner: true}

func dish(name string, cat domain.Category, cal float64, meals domain.MealEligibility, restricted ...string) domain.FoodItem {
	return domain.FoodItem{ID: name, Name: name, Category: cat, Calories: cal, Meals: meals, RestrictedDiseases: restricted}
}

func logged(userID, date string, slot domain.Slot, loggedAt time.Time, foods ...domain.LoggedFood) domain.MealLogEntry {
	var total float64
	for _, f := range foods {
		total += f.Calories
	}
	return domain.MealLogEntry{UserID: userID, Date: date, Slot: slot, Foods: foods, TotalCalories: total, LoggedAt: loggedAt}
}
