// Package store is the PostgreSQL data access layer for the fleet.
// It owns the schema and all SQL; business rules live above it.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Category is a rental grouping. Certain category names carry fixed
// service-interval overrides, resolved by the interval package.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ScooterCount int       `json:"scooterCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Scooter is one fleet vehicle. ID is the human-assigned fleet code
// (e.g. "SC-014"), used as-is in notifications and reports.
type Scooter struct {
	ID              string    `json:"id"`
	Model           string    `json:"model"`
	EngineType      string    `json:"engineType"`
	CategoryID      string    `json:"categoryId"`
	CategoryName    string    `json:"categoryName"`
	Status          string    `json:"status"` // "active" or "inactive"
	CurrentKm       int       `json:"currentKm"`
	NextKm          int       `json:"nextKm"`
	OpenDamageCount int       `json:"openDamageCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Service is one maintenance event in a scooter's history.
type Service struct {
	ID             string    `json:"id"`
	ScooterID      string    `json:"scooterId"`
	ServiceDate    time.Time `json:"serviceDate"`
	CurrentKm      int       `json:"currentKm"`
	NextKm         int       `json:"nextKm"`
	ServiceDetails string    `json:"serviceDetails"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Damage is a reported incident on a scooter.
type Damage struct {
	ID         string    `json:"id"`
	ScooterID  string    `json:"scooterId"`
	Note       string    `json:"note"`
	Resolved   bool      `json:"resolved"`
	ReportedAt time.Time `json:"reportedAt"`
}

// Store executes queries against a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// schema is applied idempotently on startup.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS scooters (
	id          TEXT PRIMARY KEY,
	model       TEXT NOT NULL DEFAULT '',
	engine_type TEXT NOT NULL,
	category_id UUID NOT NULL REFERENCES categories(id),
	status      TEXT NOT NULL DEFAULT 'active',
	current_km  INTEGER NOT NULL DEFAULT 0,
	next_km     INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS services (
	id              UUID PRIMARY KEY,
	scooter_id      TEXT NOT NULL REFERENCES scooters(id),
	service_date    DATE NOT NULL,
	current_km      INTEGER NOT NULL CHECK (current_km >= 0),
	next_km         INTEGER NOT NULL CHECK (next_km > current_km),
	service_details TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_services_scooter_date
	ON services (scooter_id, service_date);

CREATE TABLE IF NOT EXISTS damages (
	id          UUID PRIMARY KEY,
	scooter_id  TEXT NOT NULL REFERENCES scooters(id),
	note        TEXT NOT NULL,
	resolved    BOOLEAN NOT NULL DEFAULT FALSE,
	reported_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_damages_scooter
	ON damages (scooter_id) WHERE NOT resolved;
`

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
