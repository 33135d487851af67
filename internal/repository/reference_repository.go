package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/scoperhq/scoper-api/internal/models"
)

// ReferenceRepository persists the university and role reference lists.
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository instantiates the repository.
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// UniversityNames returns every known university name in insert order.
func (r *ReferenceRepository) UniversityNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.SelectContext(ctx, &names, "SELECT name FROM universities ORDER BY id"); err != nil {
		return nil, fmt.Errorf("query university names: %w", err)
	}
	return names, nil
}

// RoleNames returns the distinct curated role names.
func (r *ReferenceRepository) RoleNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.SelectContext(ctx, &names, "SELECT DISTINCT role_name FROM roles ORDER BY role_name"); err != nil {
		return nil, fmt.Errorf("query role names: %w", err)
	}
	return names, nil
}

// BulkInsertUniversities loads the seed university list, skipping names
// already present.
func (r *ReferenceRepository) BulkInsertUniversities(ctx context.Context, universities []models.University) error {
	if len(universities) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin university insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO universities (name, domains) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`
	for _, uni := range universities {
		if _, err := tx.ExecContext(ctx, query, uni.Name, uni.Domains); err != nil {
			return fmt.Errorf("insert university %q: %w", uni.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit university insert: %w", err)
	}
	return nil
}

// BulkInsertRoles loads the curated role list, skipping duplicates.
func (r *ReferenceRepository) BulkInsertRoles(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin role insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO roles (role_name) VALUES ($1) ON CONFLICT (role_name) DO NOTHING`
	for _, name := range names {
		if _, err := tx.ExecContext(ctx, query, name); err != nil {
			return fmt.Errorf("insert role %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit role insert: %w", err)
	}
	return nil
}
