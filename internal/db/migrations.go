package db

import (
	"context"
	"fmt"
)

// schema is portable between SQLite and PostgreSQL. Dates are stored as
// YYYY-MM-DD and start times as HH:MM so both engines compare them as text.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS resources (
		id           TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		color_hex    TEXT NOT NULL DEFAULT '',
		position     INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		price            TEXT NOT NULL DEFAULT '0',
		duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id         TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id               TEXT PRIMARY KEY,
		customer_id      TEXT NOT NULL REFERENCES customers(id),
		resource_id      TEXT NOT NULL REFERENCES resources(id),
		service_id       TEXT NOT NULL REFERENCES services(id),
		booking_date     TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0),
		price            TEXT NOT NULL DEFAULT '0',
		status           TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'confirmed', 'cancelled')),
		created_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings(booking_date)`,
	`CREATE INDEX IF NOT EXISTS idx_resources_position ON resources(position)`,
}

// migrate runs database migrations.
func (s *Store) migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
