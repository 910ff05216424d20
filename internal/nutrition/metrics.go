package nutrition

import (
	"math"

	"github.com/foodmind/foodmind-backend/internal/domain"
)

// MinTDEE is the lowest daily energy target ever reported.
const MinTDEE = 1200

const goalAdjustment = 500

type BodyMetrics struct {
	Weight        float64 // kg
	Height        float64 // cm
	Age           int
	Sex           domain.Sex
	ActivityLevel float64
	Goal          domain.Goal
}

type MetricResult struct {
	BMI  float64
	BMR  int
	TDEE int
}

// Calculate derives BMI, basal rate (Mifflin-St Jeor) and the goal-adjusted
// daily energy target. Inputs are assumed validated by the caller.
func Calculate(m BodyMetrics) MetricResult {
	heightM := m.Height / 100
	bmi := math.Round(m.Weight/(heightM*heightM)*10) / 10

	bmr := 10*m.Weight + 6.25*m.Height - 5*float64(m.Age)
	if m.Sex == domain.SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := int(bmr * m.ActivityLevel)
	switch m.Goal {
	case domain.GoalLose:
		tdee -= goalAdjustment
	case domain.GoalGain:
		tdee += goalAdjustment
	}
	if tdee < MinTDEE {
		tdee = MinTDEE
	}

	return MetricResult{BMI: bmi, BMR: int(bmr), TDEE: tdee}
}
