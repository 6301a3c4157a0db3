package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// InsertDamage records a new unresolved damage report.
func (s *Store) InsertDamage(ctx context.Context, scooterID, note string) (*Damage, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, fmt.Errorf("damage note is required")
	}

	d := Damage{ID: uuid.New().String(), ScooterID: scooterID, Note: note}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO damages (id, scooter_id, note) VALUES ($1, $2, $3)
		RETURNING reported_at`, d.ID, d.ScooterID, d.Note).Scan(&d.ReportedAt)
	if err != nil {
		return nil, fmt.Errorf("insert damage: %w", err)
	}
	return &d, nil
}

// ListDamagesByScooter returns all damage reports for a scooter,
// unresolved first, newest first within each group.
func (s *Store) ListDamagesByScooter(ctx context.Context, scooterID string) ([]Damage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, scooter_id, note, resolved, reported_at
		FROM damages
		WHERE scooter_id = $1
		ORDER BY resolved, reported_at DESC`, scooterID)
	if err != nil {
		return nil, fmt.Errorf("list damages: %w", err)
	}
	defer rows.Close()

	var damages []Damage
	for rows.Next() {
		var d Damage
		if err := rows.Scan(&d.ID, &d.ScooterID, &d.Note, &d.Resolved, &d.ReportedAt); err != nil {
			return nil, fmt.Errorf("scan damage: %w", err)
		}
		damages = append(damages, d)
	}
	return damages, rows.Err()
}

// ResolveDamage marks a report as fixed.
func (s *Store) ResolveDamage(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE damages SET resolved = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("resolve damage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("damage %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteDamage removes a report outright.
func (s *Store) DeleteDamage(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM damages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete damage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("damage %s: %w", id, ErrNotFound)
	}
	return nil
}
