package category

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ncastelli/hogarfin/internal/transaction"
)

// Repository handles category data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new category repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new category for an organization
func (r *Repository) Create(ctx context.Context, organizationID int64, req *CreateCategoryRequest) (*Category, error) {
	query := `
		INSERT INTO categories (organization_id, name, type)
		VALUES ($1, $2, $3)
		RETURNING id, organization_id, name, type, created_at
	`

	category := &Category{}
	err := r.db.QueryRowContext(ctx, query, organizationID, req.Name, req.Type).Scan(
		&category.ID,
		&category.OrganizationID,
		&category.Name,
		&category.Type,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// GetByID retrieves a category scoped to an organization
func (r *Repository) GetByID(ctx context.Context, id, organizationID int64) (*Category, error) {
	query := `
		SELECT id, organization_id, name, type, created_at
		FROM categories
		WHERE id = $1 AND organization_id = $2
	`

	category := &Category{}
	err := r.db.QueryRowContext(ctx, query, id, organizationID).Scan(
		&category.ID,
		&category.OrganizationID,
		&category.Name,
		&category.Type,
		&category.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// ListByOrganization retrieves all of an organization's categories by name
func (r *Repository) ListByOrganization(ctx context.Context, organizationID int64) ([]*Category, error) {
	query := `
		SELECT id, organization_id, name, type, created_at
		FROM categories
		WHERE organization_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(
			&category.ID,
			&category.OrganizationID,
			&category.Name,
			&category.Type,
			&category.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Kind resolves a category's type within an organization. The second
// return reports whether the category exists.
func (r *Repository) Kind(ctx context.Context, id, organizationID int64) (transaction.Type, bool, error) {
	var kind transaction.Type
	err := r.db.QueryRowContext(ctx, `
		SELECT type FROM categories
		WHERE id = $1 AND organization_id = $2
	`, id, organizationID).Scan(&kind)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to look up category type: %w", err)
	}

	return kind, true, nil
}

// UpdateName renames a category; the type is immutable
func (r *Repository) UpdateName(ctx context.Context, id, organizationID int64, name string) (*Category, error) {
	query := `
		UPDATE categories
		SET name = $3
		WHERE id = $1 AND organization_id = $2
		RETURNING id, organization_id, name, type, created_at
	`

	category := &Category{}
	err := r.db.QueryRowContext(ctx, query, id, organizationID, name).Scan(
		&category.ID,
		&category.OrganizationID,
		&category.Name,
		&category.Type,
		&category.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// Delete removes a category scoped to an organization
func (r *Repository) Delete(ctx context.Context, id, organizationID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM categories
		WHERE id = $1 AND organization_id = $2
	`, id, organizationID)
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	return affected > 0, nil
}
