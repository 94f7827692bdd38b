package balance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Repository fetches aggregation inputs and persists settlement checkpoints
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListEntries retrieves the transactions feeding the balance totals,
// optionally bounded by an inclusive date range
func (r *Repository) ListEntries(ctx context.Context, organizationID int64, from, to *time.Time) ([]Entry, error) {
	query := `
		SELECT u.id, u.name, t.amount, t.type
		FROM transactions t
		JOIN users u ON t.created_by_id = u.id
		WHERE t.organization_id = $1
	`
	args := []interface{}{organizationID}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND t.date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND t.date <= $%d", len(args))
	}
	query += " ORDER BY t.date ASC, t.id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.Amount, &e.Kind); err != nil {
			return nil, fmt.Errorf("failed to scan balance entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ListSharedExpensesSince retrieves shared expenses created after the given
// instant, or all of them when since is nil (no checkpoint yet). Ordered by
// creation so payer grouping is deterministic.
func (r *Repository) ListSharedExpensesSince(ctx context.Context, organizationID int64, since *time.Time) ([]SharedExpense, error) {
	query := `
		SELECT u.id, u.name, t.amount
		FROM transactions t
		JOIN users u ON t.created_by_id = u.id
		WHERE t.organization_id = $1
		  AND t.is_shared = TRUE
		  AND t.type = 'EXPENSE'
	`
	args := []interface{}{organizationID}

	if since != nil {
		args = append(args, *since)
		query += fmt.Sprintf(" AND t.created_at > $%d", len(args))
	}
	query += " ORDER BY t.created_at ASC, t.id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared expenses: %w", err)
	}
	defer rows.Close()

	var expenses []SharedExpense
	for rows.Next() {
		var e SharedExpense
		if err := rows.Scan(&e.UserID, &e.UserName, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan shared expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// LatestCheckpoint retrieves the most recent settlement checkpoint for an
// organization, or nil when the debt has never been settled
func (r *Repository) LatestCheckpoint(ctx context.Context, organizationID int64) (*Checkpoint, error) {
	query := `
		SELECT id, organization_id, amount, note, created_at
		FROM settlements
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	checkpoint := &Checkpoint{}
	err := r.db.QueryRowContext(ctx, query, organizationID).Scan(
		&checkpoint.ID,
		&checkpoint.OrganizationID,
		&checkpoint.Amount,
		&checkpoint.Note,
		&checkpoint.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest checkpoint: %w", err)
	}

	return checkpoint, nil
}

// CreateCheckpoint appends a new settlement checkpoint
func (r *Repository) CreateCheckpoint(ctx context.Context, organizationID int64, amount decimal.Decimal, note *string) (*Checkpoint, error) {
	query := `
		INSERT INTO settlements (organization_id, amount, note)
		VALUES ($1, $2, $3)
		RETURNING id, organization_id, amount, note, created_at
	`

	checkpoint := &Checkpoint{}
	err := r.db.QueryRowContext(ctx, query, organizationID, amount, note).Scan(
		&checkpoint.ID,
		&checkpoint.OrganizationID,
		&checkpoint.Amount,
		&checkpoint.Note,
		&checkpoint.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkpoint: %w", err)
	}

	return checkpoint, nil
}

// OtherMember finds any organization member other than the given user, used
// when a single payer carries all shared expenses. Returns nil when the
// organization has no second member.
func (r *Repository) OtherMember(ctx context.Context, organizationID, userID int64) (*Member, error) {
	query := `
		SELECT u.id, u.name
		FROM memberships m
		JOIN users u ON m.user_id = u.id
		WHERE m.organization_id = $1 AND m.user_id != $2
		LIMIT 1
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, organizationID, userID).Scan(&member.UserID, &member.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find other member: %w", err)
	}

	return member, nil
}
