package domain

import "time"

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
)

func (g Goal) Valid() bool {
	return g == GoalLose || g == GoalGain || g == GoalMaintain
}

// NoRestriction disables the restricted-disease filter.
const NoRestriction = "none"

type UserProfile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Sex           Sex       `json:"gender"`
	Age           int       `json:"age"`
	Height        float64   `json:"height"`
	Weight        float64   `json:"currentWeight"`
	ActivityLevel float64   `json:"activityLevel"`
	Goal          Goal      `json:"goal"`
	Restriction   string    `json:"limitHealth"`
	TDEE          int       `json:"tdee"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MetricHistoryEntry is one append-only row of the profile audit trail.
type MetricHistoryEntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Weight        float64   `json:"weight"`
	BMI           float64   `json:"bmi"`
	BMR           int       `json:"bmr"`
	TDEE          int       `json:"tdee"`
	ActivityLevel float64   `json:"activityLevel"`
	Goal          Goal      `json:"goal"`
	Restriction   string    `json:"limitHealth"`
	WeightDiff    float64   `json:"diff"`
	Note          string    `json:"note"`
}

type UpdateProfileRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Weight        float64 `json:"currentWeight"`
	Height        float64 `json:"height"`
	Age           int     `json:"age"`
	Sex           Sex     `json:"gender"`
	ActivityLevel float64 `json:"activityLevel"`
	Goal          Goal    `json:"goal"`
	Restriction   string  `json:"limitHealth"`
	Note          string  `json:"note"`
}

type UpdateProfileResponse struct {
	Message string  `json:"message"`
	TDEE    int     `json:"tdee"`
	BMI     float64 `json:"bmi"`
}
