package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/la-rentals/fleet/internal/importer"
)

// InsertService stores a single maintenance event.
func (s *Store) InsertService(ctx context.Context, svc Service) (*Service, error) {
	svc.ID = uuid.New().String()
	err := s.pool.QueryRow(ctx, `
		INSERT INTO services (id, scooter_id, service_date, current_km, next_km, service_details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		svc.ID, svc.ScooterID, svc.ServiceDate, svc.CurrentKm, svc.NextKm, svc.ServiceDetails).
		Scan(&svc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert service: %w", err)
	}
	return &svc, nil
}

// BulkInsertServices persists a validated import batch via the COPY
// protocol, which is far faster than row-by-row inserts for history
// imports. The batch is atomic: either every record lands or none do.
func (s *Store) BulkInsertServices(ctx context.Context, records []importer.ServiceRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"services"},
		[]string{"id", "scooter_id", "service_date", "current_km", "next_km", "service_details"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{
				uuid.New().String(), r.ScooterID, r.ServiceDate,
				r.CurrentKm, r.NextKm, r.ServiceDetails,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy services: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit bulk insert: %w", err)
	}
	return copied, nil
}

// GetService fetches one service record.
func (s *Store) GetService(ctx context.Context, id string) (*Service, error) {
	var svc Service
	err := s.pool.QueryRow(ctx, `
		SELECT id, scooter_id, service_date, current_km, next_km, service_details, created_at
		FROM services WHERE id = $1`, id).
		Scan(&svc.ID, &svc.ScooterID, &svc.ServiceDate, &svc.CurrentKm,
			&svc.NextKm, &svc.ServiceDetails, &svc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &svc, nil
}

// ListServicesByScooter returns a scooter's history, newest first.
func (s *Store) ListServicesByScooter(ctx context.Context, scooterID string) ([]Service, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, scooter_id, service_date, current_km, next_km, service_details, created_at
		FROM services
		WHERE scooter_id = $1
		ORDER BY service_date DESC, created_at DESC`, scooterID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	return scanServices(rows)
}

// ListServicesByCategory returns every service for a category's scooters
// within [from, to], newest first. Used by the report exports.
func (s *Store) ListServicesByCategory(ctx context.Context, categoryID string, from, to time.Time) ([]Service, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sv.id, sv.scooter_id, sv.service_date, sv.current_km, sv.next_km,
		       sv.service_details, sv.created_at
		FROM services sv
		JOIN scooters sc ON sc.id = sv.scooter_id
		WHERE sc.category_id = $1
		  AND sv.service_date BETWEEN $2 AND $3
		ORDER BY sv.service_date DESC, sv.created_at DESC`, categoryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list services by category: %w", err)
	}
	defer rows.Close()
	return scanServices(rows)
}

// DeleteService removes one history entry.
func (s *Store) DeleteService(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanServices(rows pgx.Rows) ([]Service, error) {
	var services []Service
	for rows.Next() {
		var svc Service
		if err := rows.Scan(&svc.ID, &svc.ScooterID, &svc.ServiceDate, &svc.CurrentKm,
			&svc.NextKm, &svc.ServiceDetails, &svc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}
