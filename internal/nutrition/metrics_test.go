package nutrition

import (
	"testing"

	"github.com/foodmind/foodmind-backend/internal/domain"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		in   BodyMetrics
		want MetricResult
	}{
		{
			name: "male losing weight",
			in:   BodyMetrics{Weight: 70, Height: 170, Age: 30, Sex: domain.SexMale, ActivityLevel: 1.5, Goal: domain.GoalLose},
			want: MetricResult{BMI: 24.2, BMR: 1591, TDEE: 1887},
		},
		{
			name: "female maintaining",
			in:   BodyMetrics{Weight: 60, Height: 165, Age: 25, Sex: domain.SexFemale, ActivityLevel: 1.2, Goal: domain.GoalMaintain},
			// 600 + 1031.25 - 125 - 161 = 1345.25
			want: MetricResult{BMI: 22.0, BMR: 1345, TDEE: 1614},
		},
		{
			name: "male gaining",
			in:   BodyMetrics{Weight: 80, Height: 180, Age: 40, Sex: domain.SexMale, ActivityLevel: 1.55, Goal: domain.GoalGain},
			// 800 + 1125 - 200 + 5 = 1730; 1730 * 1.55 = 2681.5
			want: MetricResult{BMI: 24.7, BMR: 1730, TDEE: 3181},
		},
		{
			name: "clamped to floor",
			in:   BodyMetrics{Weight: 40, Height: 150, Age: 80, Sex: domain.SexFemale, ActivityLevel: 1.2, Goal: domain.GoalLose},
			want: MetricResult{BMI: 17.8, BMR: 776, TDEE: MinTDEE},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.in)
			if got != tt.want {
				t.Errorf("Calculate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateNeverBelowFloor(t *testing.T) {
	for w := 30.0; w <= 150; w += 15 {
		for age := 15; age <= 90; age += 15 {
			for _, goal := range []domain.Goal{domain.GoalLose, domain.GoalMaintain, domain.GoalGain} {
				got := Calculate(BodyMetrics{Weight: w, Height: 150, Age: age, Sex: domain.SexFemale, ActivityLevel: 1.2, Goal: goal})
				if got.TDEE < MinTDEE {
					t.Fatalf("weight=%v age=%d goal=%s: TDEE %d below floor", w, age, goal, got.TDEE)
				}
			}
		}
	}
}
