package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/foodmind/foodmind-backend/internal/domain"
	"github.com/foodmind/foodmind-backend/internal/nutrition"
)

const (
	trendDays       = 7
	recentLogsLimit = 3
)

var slotLabels = map[domain.Slot]string{
	domain.SlotBreakfast: "Breakfast",
	domain.SlotLunch:     "Lunch",
	domain.SlotDinner:    "Dinner",
}

type DashboardService struct {
	profiles ProfileStore
	history  MetricHistoryStore
	logs     LogStore
	now      func() time.Time
}

func NewDashboardService(profiles ProfileStore, history MetricHistoryStore, logs LogStore) *DashboardService {
	return &DashboardService{
		profiles: profiles,
		history:  history,
		logs:     logs,
		now:      time.Now,
	}
}

func (s *DashboardService) Dashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	profile, err := loadProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	tdee := profile.TDEE
	if tdee <= 0 {
		tdee = defaultTDEE
	}
	goal := profile.Goal
	if goal == "" {
		goal = domain.GoalMaintain
	}

	history, err := s.history.ListByUserID(ctx, userID)
	if err != nil {
		return nil, upstream("list metric history", err)
	}
	targets := newTargetTimeline(history, tdee)

	now := s.now().In(nutrition.Location)
	today := nutrition.DateKey(now)
	logs, err := s.logs.ListByDateRange(ctx, userID, nutrition.DateKeyDaysAgo(now, trendDays-1), today)
	if err != nil {
		return nil, upstream("list meal logs", err)
	}

	byDate := map[string][]domain.MealLogEntry{}
	for _, l := range logs {
		byDate[l.Date] = append(byDate[l.Date], l)
	}

	chart := make([]domain.ChartPoint, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := day.Format(nutrition.DateLayout)

		var eaten float64
		for _, l := range byDate[key] {
			eaten += l.TotalCalories
		}
		chart = append(chart, domain.ChartPoint{
			Date:       day.Format("02/01"),
			CaloriesIn: int(eaten),
			TargetTDEE: targets.on(key),
		})
	}

	perSlot := map[domain.Slot]float64{}
	var todayTotal float64
	for _, l := range byDate[today] {
		perSlot[l.Slot] += l.TotalCalories
		todayTotal += l.TotalCalories
	}
	todayCalories := int(todayTotal)

	insight := nutrition.SelectInsight(nutrition.InsightInput{
		Hour:      now.Hour(),
		Breakfast: perSlot[domain.SlotBreakfast],
		Lunch:     perSlot[domain.SlotLunch],
		Today:     float64(todayCalories),
		Target:    float64(tdee),
		Goal:      goal,
	})

	distribution := make([]domain.MealShare, 0, len(domain.Slots))
	for _, slot := range domain.Slots {
		distribution = append(distribution, domain.MealShare{Name: slotLabels[slot], Value: int(perSlot[slot])})
	}

	return &domain.Dashboard{
		Summary: domain.DashboardSummary{
			TDEE:          tdee,
			TodayCalories: todayCalories,
			Remaining:     tdee - todayCalories,
			Percentage:    min(todayCalories*100/tdee, 100),
			Goal:          goal,
		},
		MealDistribution: distribution,
		Insight:          insight,
		WeeklyChart:      chart,
		RecentActivities: recentActivities(logs),
	}, nil
}

// targetTimeline resolves the energy target that applied on a given day.
type targetTimeline struct {
	entries []domain.MetricHistoryEntry
	current int
}

func newTargetTimeline(entries []domain.MetricHistoryEntry, current int) targetTimeline {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b domain.MetricHistoryEntry) int {
		return a.UpdatedAt.Compare(b.UpdatedAt)
	})
	return targetTimeline{entries: sorted, current: current}
}

// on returns the target of the latest entry dated on or before day.
func (t targetTimeline) on(day string) int {
	i := sort.Search(len(t.entries), func(i int) bool {
		return nutrition.DateKey(t.entries[i].UpdatedAt) > day
	})
	if i == 0 {
		return t.current
	}
	return t.entries[i-1].TDEE
}

func recentActivities(logs []domain.MealLogEntry) []domain.RecentActivity {
	sorted := slices.Clone(logs)
	slices.SortStableFunc(sorted, func(a, b domain.MealLogEntry) int {
		return b.LoggedAt.Compare(a.LoggedAt)
	})
	if len(sorted) > recentLogsLimit {
		sorted = sorted[:recentLogsLimit]
	}

	activities := []domain.RecentActivity{}
	for _, l := range sorted {
		if len(l.Foods) == 0 {
			continue
		}
		name := l.Foods[0].Name
		if more := len(l.Foods) - 1; more > 0 {
			name = fmt.Sprintf("%s (+%d more)", name, more)
		}
		activities = append(activities, domain.RecentActivity{
			MealType: l.Slot,
			Name:     name,
			Calories: int(l.TotalCalories),
			Time:     l.LoggedAt.In(nutrition.Location).Format("15:04"),
			FullDate: l.Date,
		})
	}
	return activities
}
