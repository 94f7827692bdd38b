package user

import (
	"context"
	"database/sql"
	"fmt"
)

// defaultCategories are seeded for every new organization
var defaultCategories = []struct {
	name string
	kind string
}{
	{"Salario", "INCOME"},
	{"Freelance", "INCOME"},
	{"Comida", "EXPENSE"},
	{"Transporte", "EXPENSE"},
	{"Servicios", "EXPENSE"},
	{"Tarjeta", "EXPENSE"},
	{"Otros", "EXPENSE"},
}

// Repository handles user data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a user by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by their email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// Register creates the user, their organization with its default categories,
// and the OWNER membership in a single transaction
func (r *Repository) Register(ctx context.Context, name, email, passwordHash, organizationName, slug string) (*User, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	user := &User{}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at
	`, name, email, passwordHash).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create user: %w", err)
	}

	var organizationID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO organizations (name, slug)
		VALUES ($1, $2)
		RETURNING id
	`, organizationName, slug).Scan(&organizationID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create organization: %w", err)
	}

	for _, c := range defaultCategories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (organization_id, name, type)
			VALUES ($1, $2, $3)
		`, organizationID, c.name, c.kind); err != nil {
			return nil, 0, fmt.Errorf("failed to seed categories: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO memberships (user_id, organization_id, role)
		VALUES ($1, $2, 'OWNER')
	`, user.ID, organizationID); err != nil {
		return nil, 0, fmt.Errorf("failed to create membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit registration: %w", err)
	}

	return user, organizationID, nil
}

// Membership is a user's role within an organization
type Membership struct {
	OrganizationID int64
	Role           string
}

// MembershipForUser retrieves the user's organization membership. Users
// belong to exactly one household, so the first membership is the one.
func (r *Repository) MembershipForUser(ctx context.Context, userID int64) (*Membership, error) {
	query := `
		SELECT organization_id, role
		FROM memberships
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT 1
	`

	membership := &Membership{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&membership.OrganizationID, &membership.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return membership, nil
}
