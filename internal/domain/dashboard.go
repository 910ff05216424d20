package domain

type InsightType string

const (
	InsightWarning InsightType = "warning"
	InsightAlert   InsightType = "alert"
	InsightSuccess InsightType = "success"
	InsightInfo    InsightType = "info"
)

type Insight struct {
	Type InsightType `json:"type"`
	Text string      `json:"text"`
}

type DashboardSummary struct {
	TDEE          int  `json:"tdee"`
	TodayCalories int  `json:"todayCalories"`
	Remaining     int  `json:"remaining"`
	Percentage    int  `json:"percentage"`
	Goal          Goal `json:"goal"`
}

type MealShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type ChartPoint struct {
	Date       string `json:"date"`
	CaloriesIn int    `json:"caloriesIn"`
	TargetTDEE int    `json:"targetTdee"`
}

type RecentActivity struct {
	MealType Slot   `json:"mealType"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Time     string `json:"time"`
	FullDate string `json:"fullDate"`
}

type Dashboard struct {
	Summary          DashboardSummary `json:"summary"`
	MealDistribution []MealShare      `json:"mealDistribution"`
	Insight          Insight          `json:"insight"`
	WeeklyChart      []ChartPoint     `json:"weeklyChart"`
	RecentActivities []RecentActivity `json:"recentActivities"`
}
