package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodmind/foodmind-backend/internal/domain"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ProfileStore returns (nil, nil) when the profile does not exist.
type ProfileStore interface {
	GetByID(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}

// MetricHistoryStore is append-only. ListByUserID is ordered by UpdatedAt ascending.
type MetricHistoryStore interface {
	Append(ctx context.Context, e *domain.MetricHistoryEntry) error
	ListByUserID(ctx context.Context, userID string) ([]domain.MetricHistoryEntry, error)
}

// LogStore keys entries by user, date and slot. Put replaces an existing entry.
type LogStore interface {
	ListByDateRange(ctx context.Context, userID, fromDate, toDate string) ([]domain.MealLogEntry, error)
	Put(ctx context.Context, e *domain.MealLogEntry) error
}

type CatalogStore interface {
	ListAll(ctx context.Context) ([]domain.FoodItem, error)
}

func upstream(what string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrUpstreamUnavailable, what, err)
}
