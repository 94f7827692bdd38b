package balance

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ncastelli/hogarfin/internal/transaction"
)

// Common errors
var (
	ErrInvalidAmount = errors.New("settle amount must be greater than zero")
)

var two = decimal.NewFromInt(2)

// Store provides the aggregation inputs and checkpoint persistence the
// balance computation needs. *Repository implements it.
type Store interface {
	ListEntries(ctx context.Context, organizationID int64, from, to *time.Time) ([]Entry, error)
	ListSharedExpensesSince(ctx context.Context, organizationID int64, since *time.Time) ([]SharedExpense, error)
	LatestCheckpoint(ctx context.Context, organizationID int64) (*Checkpoint, error)
	CreateCheckpoint(ctx context.Context, organizationID int64, amount decimal.Decimal, note *string) (*Checkpoint, error)
	OtherMember(ctx context.Context, organizationID, userID int64) (*Member, error)
}

// Service computes balance reports and records settlement checkpoints
type Service struct {
	repo      Store
	tolerance decimal.Decimal
}

// NewService creates a new balance service. tolerance is the maximum
// deviation from an even split still treated as settled up.
func NewService(repo Store, tolerance decimal.Decimal) *Service {
	return &Service{repo: repo, tolerance: tolerance}
}

// GetBalance builds the balance report for an organization. The per-member
// and organization totals honor the optional date range; the debt always
// accumulates from the latest settlement checkpoint, regardless of range.
func (s *Service) GetBalance(ctx context.Context, organizationID int64, from, to *time.Time) (*Report, error) {
	entries, err := s.repo.ListEntries(ctx, organizationID, from, to)
	if err != nil {
		return nil, err
	}

	byUser, totals := aggregate(entries)

	checkpoint, err := s.repo.LatestCheckpoint(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	var since *time.Time
	if checkpoint != nil {
		since = &checkpoint.CreatedAt
	}

	shared, err := s.repo.ListSharedExpensesSince(ctx, organizationID, since)
	if err != nil {
		return nil, err
	}

	debt, err := s.resolveDebt(ctx, organizationID, shared)
	if err != nil {
		return nil, err
	}

	return &Report{
		Organization: totals,
		ByUser:       byUser,
		Debt:         debt,
	}, nil
}

// SettleDebt records a settlement checkpoint. The amount is taken on trust:
// it is not validated against the currently computed debt, because the debt
// may have moved between the balance view and the settle action.
func (s *Service) SettleDebt(ctx context.Context, organizationID int64, amount decimal.Decimal, note *string) (*Checkpoint, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return s.repo.CreateCheckpoint(ctx, organizationID, amount, note)
}

// resolveDebt computes the pairwise debt from shared expenses. With a single
// payer the other organization member owes half of what was paid; the lookup
// happens here because it needs the repository.
func (s *Service) resolveDebt(ctx context.Context, organizationID int64, shared []SharedExpense) (*Debt, error) {
	totals := sumByPayer(shared)

	if len(totals) == 1 {
		other, err := s.repo.OtherMember(ctx, organizationID, totals[0].UserID)
		if err != nil {
			return nil, err
		}
		if other == nil {
			return nil, nil
		}
		return &Debt{
			DebtorID:     other.UserID,
			DebtorName:   other.Name,
			CreditorID:   totals[0].UserID,
			CreditorName: totals[0].UserName,
			Amount:       totals[0].Paid.Div(two),
		}, nil
	}

	return computePairDebt(totals, s.tolerance), nil
}

// payerTotal accumulates what one member paid in shared expenses
type payerTotal struct {
	UserID   int64
	UserName string
	Paid     decimal.Decimal
}

// aggregate folds transaction entries into per-member totals plus the
// organization totals. Members appear in first-seen order, which is
// deterministic because entries arrive date-ordered from the repository.
func aggregate(entries []Entry) ([]UserBalance, OrgTotals) {
	index := make(map[int64]int)
	byUser := make([]UserBalance, 0)

	for _, e := range entries {
		pos, ok := index[e.UserID]
		if !ok {
			pos = len(byUser)
			index[e.UserID] = pos
			byUser = append(byUser, UserBalance{
				UserID:       e.UserID,
				Name:         e.UserName,
				TotalIncome:  decimal.Zero,
				TotalExpense: decimal.Zero,
				Balance:      decimal.Zero,
			})
		}

		if e.Kind == transaction.TypeIncome {
			byUser[pos].TotalIncome = byUser[pos].TotalIncome.Add(e.Amount)
		} else {
			byUser[pos].TotalExpense = byUser[pos].TotalExpense.Add(e.Amount)
		}
		byUser[pos].Balance = byUser[pos].TotalIncome.Sub(byUser[pos].TotalExpense)
	}

	totals := OrgTotals{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Balance:      decimal.Zero,
	}
	for _, u := range byUser {
		totals.TotalIncome = totals.TotalIncome.Add(u.TotalIncome)
		totals.TotalExpense = totals.TotalExpense.Add(u.TotalExpense)
	}
	totals.Balance = totals.TotalIncome.Sub(totals.TotalExpense)

	return byUser, totals
}

// sumByPayer groups shared expenses by payer, preserving first-seen order
func sumByPayer(shared []SharedExpense) []payerTotal {
	index := make(map[int64]int)
	totals := make([]payerTotal, 0, 2)

	for _, e := range shared {
		pos, ok := index[e.UserID]
		if !ok {
			pos = len(totals)
			index[e.UserID] = pos
			totals = append(totals, payerTotal{
				UserID:   e.UserID,
				UserName: e.UserName,
				Paid:     decimal.Zero,
			})
		}
		totals[pos].Paid = totals[pos].Paid.Add(e.Amount)
	}

	return totals
}

// computePairDebt nets out two payers against an even split. Deviations
// within the tolerance count as settled. With zero payers there is nothing
// to settle; with more than two the household assumption is broken and no
// debt is computed.
func computePairDebt(totals []payerTotal, tolerance decimal.Decimal) *Debt {
	if len(totals) != 2 {
		return nil
	}

	first, second := totals[0], totals[1]

	half := first.Paid.Add(second.Paid).Div(two)
	deviation := first.Paid.Sub(half)

	if deviation.Abs().Cmp(tolerance) <= 0 {
		return nil
	}

	if deviation.IsPositive() {
		return &Debt{
			DebtorID:     second.UserID,
			DebtorName:   second.UserName,
			CreditorID:   first.UserID,
			CreditorName: first.UserName,
			Amount:       deviation,
		}
	}

	return &Debt{
		DebtorID:     first.UserID,
		DebtorName:   first.UserName,
		CreditorID:   second.UserID,
		CreditorName: second.UserName,
		Amount:       deviation.Abs(),
	}
}
