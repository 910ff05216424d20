package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/foodmind/foodmind-backend/internal/domain"
)

type MealLogRepository struct {
	db *sql.DB
}

func NewMealLogRepository(db *sql.DB) *MealLogRepository {
	return &MealLogRepository{db: db}
}

// Put writes the entry for (user, date, meal type); an existing entry is replaced.
func (r *MealLogRepository) Put(ctx context.Context, e *domain.MealLogEntry) error {
	foods, err := json.Marshal(e.Foods)
	if err != nil {
		return fmt.Errorf("failed to encode foods: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`REPLACE INTO meal_logs (user_id, log_date, meal_type, foods, total_calories, logged_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Date, e.Slot, foods, e.TotalCalories, e.LoggedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put meal log: %w", err)
	}
	return nil
}

// ListByDateRange returns entries with from <= log_date <= to.
func (r *MealLogRepository) ListByDateRange(ctx context.Context, userID, from, to string) ([]domain.MealLogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, log_date, meal_type, foods, total_calories, logged_at
		 FROM meal_logs
		 WHERE user_id = ? AND log_date BETWEEN ? AND ?
		 ORDER BY log_date ASC, meal_type ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.MealLogEntry
	for rows.Next() {
		var e domain.MealLogEntry
		var foods []byte
		if err := rows.Scan(&e.UserID, &e.Date, &e.Slot, &foods, &e.TotalCalories, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal log: %w", err)
		}
		if err := json.Unmarshal(foods, &e.Foods); err != nil {
			return nil, fmt.Errorf("failed to decode foods of %s: %w", e.Key(), err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
