package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ncastelli/hogarfin/internal/statement"
	"github.com/ncastelli/hogarfin/internal/transaction"
)

// Common errors
var (
	ErrNoTransactions = errors.New("no transactions found in the statement")
	ErrNoEntries      = errors.New("nothing to import")
	ErrInvalidEntry   = errors.New("invalid import entry")
)

// MissingCategoriesError reports how many entries were confirmed without a
// category assigned
type MissingCategoriesError struct {
	Count int
}

func (e *MissingCategoriesError) Error() string {
	return fmt.Sprintf("%d transactions are missing a category", e.Count)
}

// TransactionStore persists confirmed import batches
type TransactionStore interface {
	CreateBatch(ctx context.Context, txs []*transaction.Transaction) (int, error)
}

// CategoryLookup resolves a category's kind within an organization
type CategoryLookup interface {
	Kind(ctx context.Context, id, organizationID int64) (transaction.Type, bool, error)
}

// Service handles the statement import flow
type Service struct {
	store      TransactionStore
	categories CategoryLookup
}

// NewService creates a new importer service
func NewService(store TransactionStore, categories CategoryLookup) *Service {
	return &Service{store: store, categories: categories}
}

// Parse extracts transactions from a raw statement file. A statement that
// yields no transactions is an error at this layer: the user uploaded the
// wrong file or an unsupported layout.
func (s *Service) Parse(data []byte, bank statement.Bank) (*ParseResponse, error) {
	result, err := statement.Parse(data, bank)
	if err != nil {
		return nil, err
	}
	if len(result.Transactions) == 0 {
		return nil, ErrNoTransactions
	}

	return toParseResponse(result), nil
}

// Confirm validates the categorized entries and stores them as one atomic
// batch
func (s *Service) Confirm(ctx context.Context, organizationID, userID int64, req *ConfirmRequest) (int, error) {
	if len(req.Transactions) == 0 {
		return 0, ErrNoEntries
	}

	if missing := countMissingCategories(req.Transactions); missing > 0 {
		return 0, &MissingCategoriesError{Count: missing}
	}

	txs := make([]*transaction.Transaction, 0, len(req.Transactions))
	for i, entry := range req.Transactions {
		tx, err := buildTransaction(organizationID, userID, &entry)
		if err != nil {
			return 0, fmt.Errorf("entry %d: %w", i+1, err)
		}

		kind, found, err := s.categories.Kind(ctx, entry.CategoryID, organizationID)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, fmt.Errorf("entry %d: %w", i+1, transaction.ErrCategoryNotFound)
		}
		if kind != entry.Type {
			return 0, fmt.Errorf("entry %d: %w", i+1, transaction.ErrCategoryMismatch)
		}

		txs = append(txs, tx)
	}

	return s.store.CreateBatch(ctx, txs)
}

// countMissingCategories counts entries confirmed without a category
func countMissingCategories(entries []ConfirmEntry) int {
	missing := 0
	for _, entry := range entries {
		if entry.CategoryID == 0 {
			missing++
		}
	}
	return missing
}

// buildTransaction validates one entry and shapes it for persistence
func buildTransaction(organizationID, userID int64, entry *ConfirmEntry) (*transaction.Transaction, error) {
	date, err := time.Parse(transaction.DateLayout, entry.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidEntry, entry.Date)
	}
	if strings.TrimSpace(entry.Description) == "" {
		return nil, fmt.Errorf("%w: empty description", ErrInvalidEntry)
	}
	if !entry.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidEntry)
	}
	if !entry.Type.Valid() {
		return nil, fmt.Errorf("%w: bad type %q", ErrInvalidEntry, entry.Type)
	}

	return &transaction.Transaction{
		OrganizationID: organizationID,
		CreatedByID:    userID,
		Date:           date,
		Description:    strings.TrimSpace(entry.Description),
		Amount:         entry.Amount,
		Type:           entry.Type,
		CategoryID:     entry.CategoryID,
		IsShared:       entry.IsShared,
		Installment:    entry.Installment,
	}, nil
}
