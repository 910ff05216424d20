package service

import (
	"context"
	"log"
	"time"

	"github.com/foodmind/foodmind-backend/internal/domain"
	"github.com/foodmind/foodmind-backend/internal/nutrition"
)

// defaultTDEE is used for profiles saved before a target was computed.
const defaultTDEE = 2000

// blacklistDays is how many days before today count as recently eaten.
const blacklistDays = 2

type RecommendationService struct {
	profiles ProfileStore
	logs     LogStore
	catalog  CatalogStore
	combos   *nutrition.ComboGenerator
	now      func() time.Time
}

func NewRecommendationService(
	profiles ProfileStore,
	logs LogStore,
	catalog CatalogStore,
	combos *nutrition.ComboGenerator,
) *RecommendationService {
	return &RecommendationService{
		profiles: profiles,
		logs:     logs,
		catalog:  catalog,
		combos:   combos,
		now:      time.Now,
	}
}

// Recommend builds two combo options for every meal slot of today.
func (s *RecommendationService) Recommend(ctx context.Context, userID string) (domain.Recommendation, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	profile, err := loadProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}

	blacklist := s.HistoryBlacklist(ctx, userID)

	foods, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, upstream("list foods", err)
	}

	tdee := profile.TDEE
	if tdee <= 0 {
		tdee = defaultTDEE
	}

	rec := make(domain.Recommendation, len(domain.Slots))
	for _, slot := range domain.Slots {
		mains, desserts := eligibleFoods(foods, profile.Restriction, slot, blacklist)
		budget := nutrition.BudgetFor(tdee, slot)
		ceiling := nutrition.Ceiling(tdee, slot)

		first := s.combos.Generate(mains, desserts, ceiling, nil)

		var exclude map[string]struct{}
		if m, ok := first.Main(); ok {
			exclude = map[string]struct{}{m.Name: {}}
		}
		second := s.combos.Generate(mains, desserts, ceiling, exclude)

		rec[slot] = domain.SlotRecommendation{
			Budget:  budget.Calories,
			Options: [2]*domain.ComboResult{first, second},
		}
	}
	return rec, nil
}

// HistoryBlacklist returns the names of main dishes logged during the two
// days before today. Read failures yield an empty set.
func (s *RecommendationService) HistoryBlacklist(ctx context.Context, userID string) map[string]struct{} {
	now := s.now()
	from := nutrition.DateKeyDaysAgo(now, blacklistDays)
	to := nutrition.DateKeyDaysAgo(now, 1)

	blacklist := map[string]struct{}{}
	entries, err := s.logs.ListByDateRange(ctx, userID, from, to)
	if err != nil {
		log.Printf("[recommend] history unavailable for user %s: %v", userID, err)
		return blacklist
	}

	for _, e := range entries {
		if e.Date < from || e.Date > to {
			continue
		}
		for _, f := range e.Foods {
			if f.Category == domain.CategoryMain {
				blacklist[f.Name] = struct{}{}
			}
		}
	}
	return blacklist
}

func eligibleFoods(foods []domain.FoodItem, restriction string, slot domain.Slot, blacklist map[string]struct{}) (mains, desserts []domain.FoodItem) {
	for _, f := range foods {
		if restriction != "" && restriction != domain.NoRestriction && f.RestrictedFor(restriction) {
			continue
		}
		if !f.Meals.Allows(slot) {
			continue
		}
		switch f.Category {
		case domain.CategoryMain:
			if _, eaten := blacklist[f.Name]; !eaten {
				mains = append(mains, f)
			}
		case domain.CategoryDessert:
			desserts = append(desserts, f)
		}
	}
	return mains, desserts
}

func loadProfile(ctx context.Context, profiles ProfileStore, userID string) (*domain.UserProfile, error) {
	profile, err := profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, upstream("get profile", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}
