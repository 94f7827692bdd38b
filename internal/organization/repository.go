package organization

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles organization and invitation data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new organization repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves an organization by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Organization, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM organizations
		WHERE id = $1
	`

	org := &Organization{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return org, nil
}

// CreateInvitation stores a new invitation token for an organization
func (r *Repository) CreateInvitation(ctx context.Context, organizationID int64, token string) (*Invitation, error) {
	query := `
		INSERT INTO invitations (organization_id, token)
		VALUES ($1, $2)
		RETURNING id, organization_id, token, used, created_at
	`

	inv := &Invitation{}
	err := r.db.QueryRowContext(ctx, query, organizationID, token).Scan(
		&inv.ID, &inv.OrganizationID, &inv.Token, &inv.Used, &inv.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return inv, nil
}

// GetInvitationByToken retrieves an invitation by its token
func (r *Repository) GetInvitationByToken(ctx context.Context, token string) (*Invitation, error) {
	query := `
		SELECT id, organization_id, token, used, created_at
		FROM invitations
		WHERE token = $1
	`

	inv := &Invitation{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&inv.ID, &inv.OrganizationID, &inv.Token, &inv.Used, &inv.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return inv, nil
}

// EmailExists reports whether a user with this email is already registered
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// AcceptInvitation creates the invitee's user and MEMBER membership and
// consumes the invitation, all in one database transaction. Returns nil
// when the invitation was already used by a concurrent accept.
func (r *Repository) AcceptInvitation(ctx context.Context, inv *Invitation, name, email, passwordHash string) (*Joined, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE invitations SET used = TRUE
		WHERE id = $1 AND used = FALSE
	`, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to consume invitation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check consumed invitation: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	var userID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, email, passwordHash).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO memberships (user_id, organization_id, role)
		VALUES ($1, $2, $3)
	`, userID, inv.OrganizationID, RoleMember)
	if err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit invitation accept: %w", err)
	}

	return &Joined{UserID: userID, OrganizationID: inv.OrganizationID, Role: RoleMember}, nil
}
