package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foodmind/foodmind-backend/internal/domain"
	"github.com/foodmind/foodmind-backend/internal/nutrition"
)

const defaultNote = "Profile update"

type ProfileService struct {
	profiles ProfileStore
	history  MetricHistoryStore
	now      func() time.Time
}

func NewProfileService(profiles ProfileStore, history MetricHistoryStore) *ProfileService {
	return &ProfileService{profiles: profiles, history: history, now: time.Now}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return loadProfile(ctx, s.profiles, userID)
}

// Update recomputes the energy target from new body metrics, stores the
// profile and appends a snapshot to the metric history.
func (s *ProfileService) Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.UpdateProfileResponse, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	if err := validateMetrics(req); err != nil {
		return nil, err
	}

	old, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		log.Printf("[profile] previous profile unavailable for user %s: %v", userID, err)
		old = nil
	}

	result := nutrition.Calculate(nutrition.BodyMetrics{
		Weight:        req.Weight,
		Height:        req.Height,
		Age:           req.Age,
		Sex:           req.Sex,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
	})

	restriction := strings.TrimSpace(req.Restriction)
	if restriction == "" {
		restriction = domain.NoRestriction
	}
	note := req.Note
	if note == "" {
		note = defaultNote
	}

	profile := &domain.UserProfile{
		ID:            userID,
		Name:          req.Name,
		Email:         req.Email,
		Sex:           req.Sex,
		Age:           req.Age,
		Height:        req.Height,
		Weight:        req.Weight,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
		Restriction:   restriction,
		TDEE:          result.TDEE,
		UpdatedAt:     s.now().UTC(),
	}

	var diff float64
	if old != nil {
		diff = math.Round((req.Weight-old.Weight)*100) / 100
		if profile.Name == "" {
			profile.Name = old.Name
		}
		if profile.Email == "" {
			profile.Email = old.Email
		}
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, upstream("save profile", err)
	}

	entry := &domain.MetricHistoryEntry{
		ID:            uuid.NewString(),
		UserID:        userID,
		UpdatedAt:     profile.UpdatedAt,
		Weight:        req.Weight,
		BMI:           result.BMI,
		BMR:           result.BMR,
		TDEE:          result.TDEE,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
		Restriction:   restriction,
		WeightDiff:    diff,
		Note:          note,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return nil, upstream("append metric history", err)
	}

	return &domain.UpdateProfileResponse{
		Message: "profile updated",
		TDEE:    result.TDEE,
		BMI:     result.BMI,
	}, nil
}

func (s *ProfileService) History(ctx context.Context, userID string) ([]domain.MetricHistoryEntry, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	entries, err := s.history.ListByUserID(ctx, userID)
	if err != nil {
		return nil, upstream("list metric history", err)
	}
	if entries == nil {
		entries = []domain.MetricHistoryEntry{}
	}
	return entries, nil
}

func validateMetrics(req domain.UpdateProfileRequest) error {
	switch {
	case req.Weight <= 0:
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	case req.Height <= 0:
		return fmt.Errorf("%w: height must be positive", ErrInvalidInput)
	case req.Age <= 0:
		return fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	case req.ActivityLevel <= 0:
		return fmt.Errorf("%w: activity level must be positive", ErrInvalidInput)
	case req.Sex != domain.SexMale && req.Sex != domain.SexFemale:
		return fmt.Errorf("%w: gender must be male or female", ErrInvalidInput)
	case !req.Goal.Valid():
		return fmt.Errorf("%w: goal must be lose, gain or maintain", ErrInvalidInput)
	}
	return nil
}
