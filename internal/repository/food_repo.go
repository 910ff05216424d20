package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/foodmind/foodmind-backend/internal/domain"
)

type FoodRepository struct {
	db *sql.DB
}

func NewFoodRepository(db *sql.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

func (r *FoodRepository) Upsert(ctx context.Context, f *domain.FoodItem) error {
	restricted := f.RestrictedDiseases
	if restricted == nil {
		restricted = []string{}
	}
	diseases, err := json.Marshal(restricted)
	if err != nil {
		return fmt.Errorf("failed to encode restricted diseases: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO foods (id, name, category, calories, breakfast, lunch, dinner, restricted_diseases)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
			name = VALUES(name), category = VALUES(category), calories = VALUES(calories),
			breakfast = VALUES(breakfast), lunch = VALUES(lunch), dinner = VALUES(dinner),
			restricted_diseases = VALUES(restricted_diseases)`,
		f.ID, f.Name, f.Category, f.Calories, f.Meals.Breakfast, f.Meals.Lunch, f.Meals.Dinner, diseases,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert food %s: %w", f.ID, err)
	}
	return nil
}

func (r *FoodRepository) ListAll(ctx context.Context) ([]domain.FoodItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, category, calories, breakfast, lunch, dinner, restricted_diseases
		 FROM foods ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer rows.Close()

	var foods []domain.FoodItem
	for rows.Next() {
		var f domain.FoodItem
		var diseases []byte
		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.Calories, &f.Meals.Breakfast, &f.Meals.Lunch, &f.Meals.Dinner, &diseases); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		if len(diseases) > 0 {
			if err := json.Unmarshal(diseases, &f.RestrictedDiseases); err != nil {
				return nil, fmt.Errorf("failed to decode restricted diseases of %s: %w", f.ID, err)
			}
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}
