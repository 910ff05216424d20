package db

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "000_create_accounts",
		sql: `
			CREATE TABLE IF NOT EXISTS accounts (
				id            CHAR(36) PRIMARY KEY,
				email         VARCHAR(255) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
	},
	{
		version: "001_create_profiles",
		sql: `
			CREATE TABLE IF NOT EXISTS profiles (
				id             CHAR(36) PRIMARY KEY,
				name           VARCHAR(100) NOT NULL DEFAULT '',
				email          VARCHAR(255) NOT NULL DEFAULT '',
				gender         VARCHAR(10) NOT NULL,
				age            INT NOT NULL,
				height         DOUBLE NOT NULL,
				weight         DOUBLE NOT NULL,
				activity_level DOUBLE NOT NULL,
				goal           VARCHAR(10) NOT NULL,
				limit_health   VARCHAR(100) NOT NULL DEFAULT 'none',
				tdee           INT NOT NULL,
				updated_at     DATETIME(6) NOT NULL
			)`,
	},
	{
		version: "002_create_metric_history",
		sql: `
			CREATE TABLE IF NOT EXISTS metric_history (
				id             CHAR(36) PRIMARY KEY,
				user_id        CHAR(36) NOT NULL,
				updated_at     DATETIME(6) NOT NULL,
				weight         DOUBLE NOT NULL,
				bmi            DOUBLE NOT NULL,
				bmr            INT NOT NULL,
				tdee           INT NOT NULL,
				activity_level DOUBLE NOT NULL,
				goal           VARCHAR(10) NOT NULL,
				limit_health   VARCHAR(100) NOT NULL,
				weight_diff    DOUBLE NOT NULL DEFAULT 0,
				note           VARCHAR(255) NOT NULL DEFAULT '',
				INDEX idx_metric_history_user (user_id, updated_at),
				FOREIGN KEY (user_id) REFERENCES profiles(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "003_create_foods",
		sql: `
			CREATE TABLE IF NOT EXISTS foods (
				id                  VARCHAR(64) PRIMARY KEY,
				name                VARCHAR(255) NOT NULL,
				category            VARCHAR(32) NOT NULL,
				calories            DOUBLE NOT NULL,
				breakfast           BOOLEAN NOT NULL DEFAULT FALSE,
				lunch               BOOLEAN NOT NULL DEFAULT FALSE,
				dinner              BOOLEAN NOT NULL DEFAULT FALSE,
				restricted_diseases JSON NOT NULL
			)`,
	},
	{
		version: "004_create_meal_logs",
		sql: `
			CREATE TABLE IF NOT EXISTS meal_logs (
				user_id        CHAR(36) NOT NULL,
				log_date       CHAR(10) NOT NULL,
				meal_type      VARCHAR(10) NOT NULL,
				foods          JSON NOT NULL,
				total_calories DOUBLE NOT NULL,
				logged_at      DATETIME(6) NOT NULL,
				PRIMARY KEY (user_id, log_date, meal_type)
			)`,
	},
	{
		version: "005_create_password_resets",
		sql: `
			CREATE TABLE IF NOT EXISTS password_resets (
				id         BIGINT AUTO_INCREMENT PRIMARY KEY,
				account_id CHAR(36) NOT NULL,
				code       CHAR(6) NOT NULL,
				expires_at DATETIME(6) NOT NULL,
				used       BOOLEAN NOT NULL DEFAULT FALSE,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_password_resets_account (account_id),
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
}

func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := executeMigration(db, m); err != nil {
			return err
		}

		log.Printf("applied migration: %s", m.version)
	}

	return nil
}

func isMigrationApplied(db *sql.DB, version string) (bool, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?",
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}

func executeMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", m.version, err)
	}

	for _, stmt := range strings.Split(m.sql, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", m.version, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version) VALUES (?)",
		m.version,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.version, err)
	}

	return tx.Commit()
}
