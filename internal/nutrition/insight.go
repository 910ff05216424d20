package nutrition

import "github.com/foodmind/foodmind-backend/internal/domain"

const (
	lateEveningHour = 20
	eveningHour     = 17
	nearlyMetMargin = 200
)

var goalMessages = map[domain.Goal]string{
	domain.GoalLose:     "Keep it up, your weight loss is on track!",
	domain.GoalGain:     "Don't skip meals if you want to reach your weight gain goal.",
	domain.GoalMaintain: "Have a day full of energy!",
}

type InsightInput struct {
	Hour      int
	Breakfast float64
	Lunch     float64
	Today     float64
	Target    float64
	Goal      domain.Goal
}

// SelectInsight evaluates the rule table top-down; the first match wins.
func SelectInsight(in InsightInput) domain.Insight {
	if in.Hour >= lateEveningHour && in.Today > in.Target*1.25 {
		return domain.Insight{
			Type: domain.InsightWarning,
			Text: "Try not to eat any more today. Drink water or pick something very light if you are really hungry.",
		}
	}
	if in.Hour >= eveningHour && in.Breakfast+in.Lunch <= in.Target*0.5 {
		return domain.Insight{
			Type: domain.InsightAlert,
			Text: "Add a light dinner rich in protein and vegetables to keep your energy steady.",
		}
	}

	remaining := in.Target - in.Today
	switch {
	case remaining < 0:
		return domain.Insight{Type: domain.InsightWarning, Text: "You are over today's calorie target. Time to rest!"}
	case remaining < nearlyMetMargin:
		return domain.Insight{Type: domain.InsightSuccess, Text: "Great job, you have nearly met today's nutrition goal!"}
	}

	text, ok := goalMessages[in.Goal]
	if !ok {
		text = goalMessages[domain.GoalMaintain]
	}
	return domain.Insight{Type: domain.InsightInfo, Text: text}
}
