package balance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncastelli/hogarfin/internal/transaction"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var defaultTolerance = dec("0.01")

func TestAggregate(t *testing.T) {
	t.Run("empty input yields zero totals", func(t *testing.T) {
		byUser, totals := aggregate(nil)

		assert.Empty(t, byUser)
		assert.True(t, totals.TotalIncome.IsZero())
		assert.True(t, totals.TotalExpense.IsZero())
		assert.True(t, totals.Balance.IsZero())
	})

	t.Run("sums income and expense per member", func(t *testing.T) {
		entries := []Entry{
			{UserID: 1, UserName: "Ana", Amount: dec("1000"), Kind: transaction.TypeIncome},
			{UserID: 1, UserName: "Ana", Amount: dec("300"), Kind: transaction.TypeExpense},
			{UserID: 2, UserName: "Bruno", Amount: dec("500"), Kind: transaction.TypeIncome},
			{UserID: 1, UserName: "Ana", Amount: dec("200"), Kind: transaction.TypeExpense},
		}

		byUser, totals := aggregate(entries)

		require.Len(t, byUser, 2)

		ana := byUser[0]
		assert.Equal(t, int64(1), ana.UserID)
		assert.True(t, ana.TotalIncome.Equal(dec("1000")), "income: %s", ana.TotalIncome)
		assert.True(t, ana.TotalExpense.Equal(dec("500")), "expense: %s", ana.TotalExpense)
		assert.True(t, ana.Balance.Equal(dec("500")), "balance: %s", ana.Balance)

		bruno := byUser[1]
		assert.True(t, bruno.Balance.Equal(dec("500")))

		assert.True(t, totals.TotalIncome.Equal(dec("1500")))
		assert.True(t, totals.TotalExpense.Equal(dec("500")))
		assert.True(t, totals.Balance.Equal(dec("1000")))
	})

	t.Run("is order independent", func(t *testing.T) {
		entries := []Entry{
			{UserID: 1, UserName: "Ana", Amount: dec("100"), Kind: transaction.TypeExpense},
			{UserID: 2, UserName: "Bruno", Amount: dec("70"), Kind: transaction.TypeIncome},
			{UserID: 1, UserName: "Ana", Amount: dec("40"), Kind: transaction.TypeIncome},
		}
		reversed := []Entry{entries[2], entries[1], entries[0]}

		_, totals1 := aggregate(entries)
		_, totals2 := aggregate(reversed)

		assert.True(t, totals1.TotalIncome.Equal(totals2.TotalIncome))
		assert.True(t, totals1.TotalExpense.Equal(totals2.TotalExpense))
		assert.True(t, totals1.Balance.Equal(totals2.Balance))
	})
}

func TestSumByPayer(t *testing.T) {
	shared := []SharedExpense{
		{UserID: 1, UserName: "Ana", Amount: dec("100")},
		{UserID: 2, UserName: "Bruno", Amount: dec("50")},
		{UserID: 1, UserName: "Ana", Amount: dec("200")},
	}

	totals := sumByPayer(shared)

	require.Len(t, totals, 2)
	assert.Equal(t, int64(1), totals[0].UserID)
	assert.True(t, totals[0].Paid.Equal(dec("300")))
	assert.Equal(t, int64(2), totals[1].UserID)
	assert.True(t, totals[1].Paid.Equal(dec("50")))
}

func TestComputePairDebt(t *testing.T) {
	t.Run("uneven payers produce a debt for the difference from half", func(t *testing.T) {
		totals := []payerTotal{
			{UserID: 1, UserName: "Ana", Paid: dec("300")},
			{UserID: 2, UserName: "Bruno", Paid: dec("100")},
		}

		debt := computePairDebt(totals, defaultTolerance)

		require.NotNil(t, debt)
		assert.Equal(t, int64(2), debt.DebtorID)
		assert.Equal(t, "Bruno", debt.DebtorName)
		assert.Equal(t, int64(1), debt.CreditorID)
		assert.Equal(t, "Ana", debt.CreditorName)
		assert.True(t, debt.Amount.Equal(dec("100")), "amount: %s", debt.Amount)
	})

	t.Run("creditor is whoever paid more, regardless of order", func(t *testing.T) {
		totals := []payerTotal{
			{UserID: 2, UserName: "Bruno", Paid: dec("100")},
			{UserID: 1, UserName: "Ana", Paid: dec("300")},
		}

		debt := computePairDebt(totals, defaultTolerance)

		require.NotNil(t, debt)
		assert.Equal(t, int64(2), debt.DebtorID)
		assert.Equal(t, int64(1), debt.CreditorID)
		assert.True(t, debt.Amount.Equal(dec("100")))
	})

	t.Run("deviation within tolerance means settled up", func(t *testing.T) {
		totals := []payerTotal{
			{UserID: 1, UserName: "Ana", Paid: dec("100.01")},
			{UserID: 2, UserName: "Bruno", Paid: dec("100.00")},
		}

		assert.Nil(t, computePairDebt(totals, defaultTolerance))
	})

	t.Run("deviation just past tolerance produces a debt", func(t *testing.T) {
		totals := []payerTotal{
			{UserID: 1, UserName: "Ana", Paid: dec("100.03")},
			{UserID: 2, UserName: "Bruno", Paid: dec("100.00")},
		}

		debt := computePairDebt(totals, defaultTolerance)

		require.NotNil(t, debt)
		assert.True(t, debt.Amount.Equal(dec("0.015")), "amount: %s", debt.Amount)
	})

	t.Run("tolerance is configurable", func(t *testing.T) {
		totals := []payerTotal{
			{UserID: 1, UserName: "Ana", Paid: dec("110")},
			{UserID: 2, UserName: "Bruno", Paid: dec("100")},
		}

		assert.Nil(t, computePairDebt(totals, dec("5")))
		assert.NotNil(t, computePairDebt(totals, dec("1")))
	})

	t.Run("no payers means no debt", func(t *testing.T) {
		assert.Nil(t, computePairDebt(nil, defaultTolerance))
	})

	t.Run("more than two payers means no debt", func(t *testing.T) {
		totals := []payerTotal{
			{UserID: 1, UserName: "Ana", Paid: dec("300")},
			{UserID: 2, UserName: "Bruno", Paid: dec("100")},
			{UserID: 3, UserName: "Clara", Paid: dec("50")},
		}

		assert.Nil(t, computePairDebt(totals, defaultTolerance))
	})
}

// fakeStore feeds the service canned aggregation inputs. Shared expenses are
// split into before/after sets so checkpoint filtering is observable: the
// "after" set is returned only when a since bound is passed through.
type fakeStore struct {
	entries     []Entry
	sharedAll   []SharedExpense
	sharedAfter []SharedExpense
	checkpoint  *Checkpoint
	other       *Member

	sinceSeen   *time.Time
	checkpoints []Checkpoint
}

func (f *fakeStore) ListEntries(ctx context.Context, organizationID int64, from, to *time.Time) ([]Entry, error) {
	return f.entries, nil
}

func (f *fakeStore) ListSharedExpensesSince(ctx context.Context, organizationID int64, since *time.Time) ([]SharedExpense, error) {
	f.sinceSeen = since
	if since != nil {
		return f.sharedAfter, nil
	}
	return f.sharedAll, nil
}

func (f *fakeStore) LatestCheckpoint(ctx context.Context, organizationID int64) (*Checkpoint, error) {
	return f.checkpoint, nil
}

func (f *fakeStore) CreateCheckpoint(ctx context.Context, organizationID int64, amount decimal.Decimal, note *string) (*Checkpoint, error) {
	cp := Checkpoint{ID: int64(len(f.checkpoints) + 1), OrganizationID: organizationID, Amount: amount, Note: note, CreatedAt: time.Now()}
	f.checkpoints = append(f.checkpoints, cp)
	return &cp, nil
}

func (f *fakeStore) OtherMember(ctx context.Context, organizationID, userID int64) (*Member, error) {
	return f.other, nil
}

func TestGetBalanceDebt(t *testing.T) {
	ctx := context.Background()

	t.Run("single payer leaves the other member owing half", func(t *testing.T) {
		store := &fakeStore{
			sharedAll: []SharedExpense{
				{UserID: 1, UserName: "Ana", Amount: dec("30")},
				{UserID: 1, UserName: "Ana", Amount: dec("20")},
			},
			other: &Member{UserID: 2, Name: "Bruno"},
		}
		service := NewService(store, defaultTolerance)

		report, err := service.GetBalance(ctx, 10, nil, nil)

		require.NoError(t, err)
		require.NotNil(t, report.Debt)
		assert.Equal(t, int64(2), report.Debt.DebtorID)
		assert.Equal(t, "Bruno", report.Debt.DebtorName)
		assert.Equal(t, int64(1), report.Debt.CreditorID)
		assert.True(t, report.Debt.Amount.Equal(dec("25")), "amount: %s", report.Debt.Amount)
		assert.Nil(t, store.sinceSeen, "no checkpoint means no since bound")
	})

	t.Run("single payer with no second member yields no debt", func(t *testing.T) {
		store := &fakeStore{
			sharedAll: []SharedExpense{{UserID: 1, UserName: "Ana", Amount: dec("50")}},
		}
		service := NewService(store, defaultTolerance)

		report, err := service.GetBalance(ctx, 10, nil, nil)

		require.NoError(t, err)
		assert.Nil(t, report.Debt)
	})

	t.Run("debt counts only shared expenses after the latest checkpoint", func(t *testing.T) {
		settledAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		store := &fakeStore{
			checkpoint: &Checkpoint{ID: 1, OrganizationID: 10, Amount: dec("400"), CreatedAt: settledAt},
			// Pre-checkpoint history would put Ana massively ahead; only the
			// post-checkpoint pair may count.
			sharedAll: []SharedExpense{
				{UserID: 1, UserName: "Ana", Amount: dec("1000")},
				{UserID: 1, UserName: "Ana", Amount: dec("300")},
				{UserID: 2, UserName: "Bruno", Amount: dec("100")},
			},
			sharedAfter: []SharedExpense{
				{UserID: 1, UserName: "Ana", Amount: dec("300")},
				{UserID: 2, UserName: "Bruno", Amount: dec("100")},
			},
		}
		service := NewService(store, defaultTolerance)

		report, err := service.GetBalance(ctx, 10, nil, nil)

		require.NoError(t, err)
		require.NotNil(t, store.sinceSeen)
		assert.True(t, store.sinceSeen.Equal(settledAt), "since: %s", store.sinceSeen)
		require.NotNil(t, report.Debt)
		assert.Equal(t, int64(2), report.Debt.DebtorID)
		assert.True(t, report.Debt.Amount.Equal(dec("100")), "amount: %s", report.Debt.Amount)
	})

	t.Run("no shared expenses since the checkpoint means settled up", func(t *testing.T) {
		settledAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		store := &fakeStore{
			checkpoint: &Checkpoint{ID: 1, OrganizationID: 10, Amount: dec("400"), CreatedAt: settledAt},
			sharedAll:  []SharedExpense{{UserID: 1, UserName: "Ana", Amount: dec("1000")}},
		}
		service := NewService(store, defaultTolerance)

		report, err := service.GetBalance(ctx, 10, nil, nil)

		require.NoError(t, err)
		assert.Nil(t, report.Debt)
	})
}

func TestSettleDebt(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		store := &fakeStore{}
		service := NewService(store, defaultTolerance)

		_, err := service.SettleDebt(ctx, 10, dec("0"), nil)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Empty(t, store.checkpoints)
	})

	t.Run("records a checkpoint for a positive amount", func(t *testing.T) {
		store := &fakeStore{}
		service := NewService(store, defaultTolerance)

		cp, err := service.SettleDebt(ctx, 10, dec("125.50"), nil)

		require.NoError(t, err)
		assert.True(t, cp.Amount.Equal(dec("125.50")))
		assert.Len(t, store.checkpoints, 1)
	})
}
