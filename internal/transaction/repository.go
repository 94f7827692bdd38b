package transaction

import (
	"context"
	"database/sql"
	"fmt"
)

const selectColumns = `
	t.id, t.organization_id, t.created_by_id, t.date, t.description,
	t.amount, t.type, t.category_id, t.is_shared, t.installment, t.created_at,
	c.name AS category_name, u.name AS created_by_name
`

// Repository handles transaction data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a single transaction and returns it with joins populated
func (r *Repository) Create(ctx context.Context, tx *Transaction) (*Transaction, error) {
	query := `
		INSERT INTO transactions (organization_id, created_by_id, date, description, amount, type, category_id, is_shared, installment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		tx.OrganizationID, tx.CreatedByID, tx.Date, tx.Description,
		tx.Amount, tx.Type, tx.CategoryID, tx.IsShared, tx.Installment,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return r.GetByID(ctx, tx.ID, tx.OrganizationID)
}

// CreateBatch inserts all transactions atomically: either every row is
// created or none is
func (r *Repository) CreateBatch(ctx context.Context, txs []*Transaction) (int, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (organization_id, created_by_id, date, description, amount, type, category_id, is_shared, installment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		if _, err := stmt.ExecContext(ctx,
			tx.OrganizationID, tx.CreatedByID, tx.Date, tx.Description,
			tx.Amount, tx.Type, tx.CategoryID, tx.IsShared, tx.Installment,
		); err != nil {
			return 0, fmt.Errorf("failed to insert transaction batch: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction batch: %w", err)
	}

	return len(txs), nil
}

// GetByID retrieves a transaction scoped to an organization
func (r *Repository) GetByID(ctx context.Context, id, organizationID int64) (*Transaction, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		JOIN users u ON t.created_by_id = u.id
		WHERE t.id = $1 AND t.organization_id = $2
	`

	tx := &Transaction{}
	err := r.db.QueryRowContext(ctx, query, id, organizationID).Scan(
		&tx.ID, &tx.OrganizationID, &tx.CreatedByID, &tx.Date, &tx.Description,
		&tx.Amount, &tx.Type, &tx.CategoryID, &tx.IsShared, &tx.Installment, &tx.CreatedAt,
		&tx.CategoryName, &tx.CreatedByName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return tx, nil
}

// List retrieves an organization's transactions, newest first, honoring the
// optional filters
func (r *Repository) List(ctx context.Context, organizationID int64, filters *ListFilters) ([]*Transaction, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		JOIN users u ON t.created_by_id = u.id
		WHERE t.organization_id = $1
	`
	args := []interface{}{organizationID}

	if filters != nil {
		if filters.Type != nil {
			args = append(args, *filters.Type)
			query += fmt.Sprintf(" AND t.type = $%d", len(args))
		}
		if filters.CategoryID != nil {
			args = append(args, *filters.CategoryID)
			query += fmt.Sprintf(" AND t.category_id = $%d", len(args))
		}
		if filters.DateFrom != nil {
			args = append(args, *filters.DateFrom)
			query += fmt.Sprintf(" AND t.date >= $%d", len(args))
		}
		if filters.DateTo != nil {
			args = append(args, *filters.DateTo)
			query += fmt.Sprintf(" AND t.date <= $%d", len(args))
		}
	}
	query += " ORDER BY t.date DESC, t.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		tx := &Transaction{}
		if err := rows.Scan(
			&tx.ID, &tx.OrganizationID, &tx.CreatedByID, &tx.Date, &tx.Description,
			&tx.Amount, &tx.Type, &tx.CategoryID, &tx.IsShared, &tx.Installment, &tx.CreatedAt,
			&tx.CategoryName, &tx.CreatedByName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

// Update overwrites a transaction's mutable fields
func (r *Repository) Update(ctx context.Context, tx *Transaction) (*Transaction, error) {
	query := `
		UPDATE transactions
		SET date = $3, description = $4, amount = $5, type = $6,
		    category_id = $7, is_shared = $8, installment = $9
		WHERE id = $1 AND organization_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.OrganizationID, tx.Date, tx.Description,
		tx.Amount, tx.Type, tx.CategoryID, tx.IsShared, tx.Installment,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, tx.ID, tx.OrganizationID)
}

// Delete removes a transaction scoped to an organization
func (r *Repository) Delete(ctx context.Context, id, organizationID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM transactions
		WHERE id = $1 AND organization_id = $2
	`, id, organizationID)
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	return affected > 0, nil
}
