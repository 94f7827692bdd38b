package importer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncastelli/hogarfin/internal/statement"
	"github.com/ncastelli/hogarfin/internal/transaction"
)

type fakeStore struct {
	batches [][]*transaction.Transaction
	err     error
}

func (f *fakeStore) CreateBatch(ctx context.Context, txs []*transaction.Transaction) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.batches = append(f.batches, txs)
	return len(txs), nil
}

type fakeCategories struct {
	kinds map[int64]transaction.Type
}

func (f *fakeCategories) Kind(ctx context.Context, id, organizationID int64) (transaction.Type, bool, error) {
	kind, ok := f.kinds[id]
	return kind, ok, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(categoryID int64, txType transaction.Type) ConfirmEntry {
	return ConfirmEntry{
		Date:        "2026-01-01",
		Description: "SUPERMERCADO DIA",
		Amount:      dec("1500.50"),
		Type:        txType,
		CategoryID:  categoryID,
	}
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	categories := &fakeCategories{kinds: map[int64]transaction.Type{
		1: transaction.TypeExpense,
		2: transaction.TypeIncome,
	}}

	t.Run("rejects an empty batch", func(t *testing.T) {
		service := NewService(&fakeStore{}, categories)

		_, err := service.Confirm(ctx, 10, 20, &ConfirmRequest{})

		assert.ErrorIs(t, err, ErrNoEntries)
	})

	t.Run("rejects entries without categories and reports how many", func(t *testing.T) {
		service := NewService(&fakeStore{}, categories)
		req := &ConfirmRequest{Transactions: []ConfirmEntry{
			entry(1, transaction.TypeExpense),
			entry(0, transaction.TypeExpense),
			entry(0, transaction.TypeExpense),
		}}

		_, err := service.Confirm(ctx, 10, 20, req)

		var missing *MissingCategoriesError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, 2, missing.Count)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		service := NewService(&fakeStore{}, categories)
		req := &ConfirmRequest{Transactions: []ConfirmEntry{
			entry(99, transaction.TypeExpense),
		}}

		_, err := service.Confirm(ctx, 10, 20, req)

		assert.ErrorIs(t, err, transaction.ErrCategoryNotFound)
	})

	t.Run("rejects a category whose type does not match", func(t *testing.T) {
		service := NewService(&fakeStore{}, categories)
		req := &ConfirmRequest{Transactions: []ConfirmEntry{
			entry(2, transaction.TypeExpense), // category 2 is INCOME
		}}

		_, err := service.Confirm(ctx, 10, 20, req)

		assert.ErrorIs(t, err, transaction.ErrCategoryMismatch)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		service := NewService(&fakeStore{}, categories)
		bad := entry(1, transaction.TypeExpense)
		bad.Amount = dec("0")

		_, err := service.Confirm(ctx, 10, 20, &ConfirmRequest{Transactions: []ConfirmEntry{bad}})

		assert.ErrorIs(t, err, ErrInvalidEntry)
	})

	t.Run("stores a valid batch atomically", func(t *testing.T) {
		store := &fakeStore{}
		service := NewService(store, categories)
		installment := "3/12"
		second := entry(2, transaction.TypeIncome)
		second.Description = "SUELDO"
		first := entry(1, transaction.TypeExpense)
		first.IsShared = true
		first.Installment = &installment
		req := &ConfirmRequest{Transactions: []ConfirmEntry{first, second}}

		count, err := service.Confirm(ctx, 10, 20, req)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		require.Len(t, store.batches, 1)
		require.Len(t, store.batches[0], 2)

		saved := store.batches[0][0]
		assert.Equal(t, int64(10), saved.OrganizationID)
		assert.Equal(t, int64(20), saved.CreatedByID)
		assert.Equal(t, "SUPERMERCADO DIA", saved.Description)
		assert.True(t, saved.Amount.Equal(dec("1500.50")))
		assert.Equal(t, transaction.TypeExpense, saved.Type)
		assert.True(t, saved.IsShared)
		require.NotNil(t, saved.Installment)
		assert.Equal(t, "3/12", *saved.Installment)
		assert.Equal(t, "2026-01-01", saved.Date.Format(transaction.DateLayout))
	})

	t.Run("stores nothing when any entry fails validation", func(t *testing.T) {
		store := &fakeStore{}
		service := NewService(store, categories)
		bad := entry(1, transaction.TypeExpense)
		bad.Date = "01/01/2026"
		req := &ConfirmRequest{Transactions: []ConfirmEntry{
			entry(1, transaction.TypeExpense),
			bad,
		}}

		_, err := service.Confirm(ctx, 10, 20, req)

		assert.ErrorIs(t, err, ErrInvalidEntry)
		assert.Empty(t, store.batches)
	})
}

func TestParse(t *testing.T) {
	service := NewService(&fakeStore{}, &fakeCategories{})

	t.Run("rejects a file that is not a statement", func(t *testing.T) {
		_, err := service.Parse([]byte("not a workbook"), statement.BankSantander)

		assert.Error(t, err)
	})

	t.Run("rejects an unsupported bank", func(t *testing.T) {
		_, err := service.Parse([]byte{}, statement.Bank("GALICIA"))

		assert.ErrorIs(t, err, statement.ErrUnsupportedBank)
	})
}
