package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// CreateScooter registers a vehicle under a category.
func (s *Store) CreateScooter(ctx context.Context, sc Scooter) (*Scooter, error) {
	sc.ID = strings.TrimSpace(sc.ID)
	if sc.ID == "" {
		return nil, fmt.Errorf("scooter id is required")
	}
	if sc.Status == "" {
		sc.Status = "active"
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO scooters (id, model, engine_type, category_id, status, current_km, next_km)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		sc.ID, sc.Model, sc.EngineType, sc.CategoryID, sc.Status, sc.CurrentKm, sc.NextKm).
		Scan(&sc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create scooter: %w", err)
	}
	return &sc, nil
}

// GetScooter fetches one scooter with its category name and open damage count.
func (s *Store) GetScooter(ctx context.Context, id string) (*Scooter, error) {
	var sc Scooter
	err := s.pool.QueryRow(ctx, `
		SELECT sc.id, sc.model, sc.engine_type, sc.category_id, c.name,
		       sc.status, sc.current_km, sc.next_km, sc.created_at,
		       (SELECT COUNT(*) FROM damages d WHERE d.scooter_id = sc.id AND NOT d.resolved)
		FROM scooters sc
		JOIN categories c ON c.id = sc.category_id
		WHERE sc.id = $1`, id).
		Scan(&sc.ID, &sc.Model, &sc.EngineType, &sc.CategoryID, &sc.CategoryName,
			&sc.Status, &sc.CurrentKm, &sc.NextKm, &sc.CreatedAt, &sc.OpenDamageCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("scooter %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get scooter: %w", err)
	}
	return &sc, nil
}

// ListScootersByCategory returns a category's scooters ordered by id,
// each with its open damage count for list-view alerting.
func (s *Store) ListScootersByCategory(ctx context.Context, categoryID string) ([]Scooter, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sc.id, sc.model, sc.engine_type, sc.category_id, c.name,
		       sc.status, sc.current_km, sc.next_km, sc.created_at,
		       (SELECT COUNT(*) FROM damages d WHERE d.scooter_id = sc.id AND NOT d.resolved)
		FROM scooters sc
		JOIN categories c ON c.id = sc.category_id
		WHERE sc.category_id = $1
		ORDER BY sc.id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list scooters: %w", err)
	}
	defer rows.Close()

	var scooters []Scooter
	for rows.Next() {
		var sc Scooter
		if err := rows.Scan(&sc.ID, &sc.Model, &sc.EngineType, &sc.CategoryID, &sc.CategoryName,
			&sc.Status, &sc.CurrentKm, &sc.NextKm, &sc.CreatedAt, &sc.OpenDamageCount); err != nil {
			return nil, fmt.Errorf("scan scooter: %w", err)
		}
		scooters = append(scooters, sc)
	}
	return scooters, rows.Err()
}

// SetScooterStatus flips a scooter between active and inactive.
func (s *Store) SetScooterStatus(ctx context.Context, id, status string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE scooters SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set scooter status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scooter %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateScooterKm records the latest odometer reading and next-service
// threshold on the scooter itself, and marks it active.
func (s *Store) UpdateScooterKm(ctx context.Context, id string, currentKm, nextKm int) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE scooters SET current_km = $2, next_km = $3, status = 'active'
		WHERE id = $1`, id, currentKm, nextKm)
	if err != nil {
		return fmt.Errorf("update scooter km: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scooter %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteScooter removes a scooter together with its service history and
// damage reports, atomically.
func (s *Store) DeleteScooter(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete scooter: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM services WHERE scooter_id = $1`, id); err != nil {
		return fmt.Errorf("delete services: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM damages WHERE scooter_id = $1`, id); err != nil {
		return fmt.Errorf("delete damages: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM scooters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scooter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scooter %s: %w", id, ErrNotFound)
	}

	return tx.Commit(ctx)
}
