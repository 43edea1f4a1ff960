package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		role VARCHAR(16) NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS routes (
		id BIGINT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		batta_per_trip BIGINT NOT NULL DEFAULT 0,
		salary_per_trip BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(32) NOT NULL DEFAULT '',
		license VARCHAR(64) NOT NULL DEFAULT '',
		payment_mode VARCHAR(16) NOT NULL,
		approved TINYINT(1) NOT NULL DEFAULT 0,
		registered_date DATE NOT NULL,
		INDEX idx_drivers_user (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS trips (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		route_id BIGINT NOT NULL,
		driver_id BIGINT NOT NULL,
		trip_date DATE NOT NULL,
		vehicle VARCHAR(32) NOT NULL,
		settled TINYINT(1) NOT NULL DEFAULT 0,
		settlement_id BIGINT NULL,
		INDEX idx_trips_settled (settled),
		INDEX idx_trips_driver (driver_id)
	)`,
	`CREATE TABLE IF NOT EXISTS settlements (
		id BIGINT PRIMARY KEY,
		type VARCHAR(16) NOT NULL,
		settlement_date DATE NOT NULL,
		trip_count INT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS settlement_lines (
		settlement_id BIGINT NOT NULL,
		position INT NOT NULL,
		driver_id BIGINT NOT NULL,
		driver_name VARCHAR(255) NOT NULL,
		batta_amount BIGINT NOT NULL DEFAULT 0,
		salary_amount BIGINT NOT NULL DEFAULT 0,
		total_amount BIGINT NOT NULL DEFAULT 0,
		PRIMARY KEY (settlement_id, position)
	)`,
}

// EnsureSchema creates the tables the MySQL store needs when they are missing.
func EnsureSchema(ctx context.Context, db Execer) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// Placeholders returns "?,?,?" for n arguments.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, 2*n-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, '?')
	}
	return string(b)
}
