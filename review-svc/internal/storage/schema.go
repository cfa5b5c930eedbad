package storage

import (
	"context"
	"fmt"
	"time"

	"restaurant-reviews/review-svc/internal/domain"
)

var seedCreatedDate = time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)

// SeedRestaurants is the fixed catalog inserted on first run.
func SeedRestaurants() []domain.Restaurant {
	return []domain.Restaurant{
		{ID: 1, Name: "The Italian Kitchen", Location: "Downtown", CuisineType: "Italian", CreatedDate: seedCreatedDate, Version: 1},
		{ID: 2, Name: "Spice Route", Location: "Midtown", CuisineType: "Indian", CreatedDate: seedCreatedDate, Version: 1},
	}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		location VARCHAR(100) NOT NULL,
		cuisine_type VARCHAR(50) NOT NULL,
		created_date TIMESTAMPTZ NOT NULL,
		version INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id SERIAL PRIMARY KEY,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment VARCHAR(500) NOT NULL,
		restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		created_date TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		version INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_restaurant_id ON reviews (restaurant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_user_id ON reviews (user_id)`,
}

// EnsureSchema creates the tables and inserts the seed catalog. It is safe
// to run on every start.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}

	for _, rest := range SeedRestaurants() {
		if _, err := r.DB.ExecContext(ctx, `
			INSERT INTO restaurants (id, name, location, cuisine_type, created_date, version)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			rest.ID, rest.Name, rest.Location, rest.CuisineType, rest.CreatedDate, rest.Version); err != nil {
			return fmt.Errorf("seed restaurant %d: %w", rest.ID, err)
		}
	}

	if _, err := r.DB.ExecContext(ctx,
		`SELECT setval(pg_get_serial_sequence('restaurants', 'id'), GREATEST((SELECT MAX(id) FROM restaurants), 1))`); err != nil {
		return fmt.Errorf("advance restaurant sequence: %w", err)
	}
	return nil
}
