package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foodmind/foodmind-backend/internal/domain"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert replaces every metric column of the profile row.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.UserProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, email, gender, age, height, weight, activity_level, goal, limit_health, tdee, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
			name = VALUES(name), email = VALUES(email), gender = VALUES(gender), age = VALUES(age),
			height = VALUES(height), weight = VALUES(weight), activity_level = VALUES(activity_level),
			goal = VALUES(goal), limit_health = VALUES(limit_health), tdee = VALUES(tdee),
			updated_at = VALUES(updated_at)`,
		p.ID, p.Name, p.Email, p.Sex, p.Age, p.Height, p.Weight, p.ActivityLevel, p.Goal, p.Restriction, p.TDEE, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, gender, age, height, weight, activity_level, goal, limit_health, tdee, updated_at
		 FROM profiles WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Email, &p.Sex, &p.Age, &p.Height, &p.Weight, &p.ActivityLevel, &p.Goal, &p.Restriction, &p.TDEE, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}
