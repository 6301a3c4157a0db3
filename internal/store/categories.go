package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrCategoryNotEmpty guards against deleting a category that still has
// scooters assigned.
var ErrCategoryNotEmpty = errors.New("category still has scooters")

// ListCategories returns all categories with their scooter counts,
// ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.name, COUNT(sc.id), c.created_at
		FROM categories c
		LEFT JOIN scooters sc ON sc.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ScooterCount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// GetCategory fetches one category by id.
func (s *Store) GetCategory(ctx context.Context, id string) (*Category, error) {
	var c Category
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// CreateCategory inserts a new category with a generated id.
func (s *Store) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	c := Category{ID: uuid.New().String(), Name: name}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name) VALUES ($1, $2)
		RETURNING created_at`, c.ID, c.Name).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &c, nil
}

// DeleteCategory removes a category. Categories with scooters assigned
// cannot be deleted; reassign or delete the scooters first.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	var count int
	if err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM scooters WHERE category_id = $1`, id).Scan(&count); err != nil {
		return fmt.Errorf("count scooters: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("category %s: %w", id, ErrCategoryNotEmpty)
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return nil
}
