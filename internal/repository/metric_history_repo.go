package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foodmind/foodmind-backend/internal/domain"
)

type MetricHistoryRepository struct {
	db *sql.DB
}

func NewMetricHistoryRepository(db *sql.DB) *MetricHistoryRepository {
	return &MetricHistoryRepository{db: db}
}

func (r *MetricHistoryRepository) Append(ctx context.Context, e *domain.MetricHistoryEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO metric_history (id, user_id, updated_at, weight, bmi, bmr, tdee, activity_level, goal, limit_health, weight_diff, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.UpdatedAt, e.Weight, e.BMI, e.BMR, e.TDEE, e.ActivityLevel, e.Goal, e.Restriction, e.WeightDiff, e.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to append metric history: %w", err)
	}
	return nil
}

func (r *MetricHistoryRepository) ListByUserID(ctx context.Context, userID string) ([]domain.MetricHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, updated_at, weight, bmi, bmr, tdee, activity_level, goal, limit_health, weight_diff, note
		 FROM metric_history
		 WHERE user_id = ?
		 ORDER BY updated_at ASC, id ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list metric history: %w", err)
	}
	defer rows.Close()

	var entries []domain.MetricHistoryEntry
	for rows.Next() {
		var e domain.MetricHistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.UpdatedAt, &e.Weight, &e.BMI, &e.BMR, &e.TDEE, &e.ActivityLevel, &e.Goal, &e.Restriction, &e.WeightDiff, &e.Note); err != nil {
			return nil, fmt.Errorf("failed to scan metric history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
