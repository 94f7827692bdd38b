package balance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ncastelli/hogarfin/internal/transaction"
)

// UserBalance holds one member's totals for the requested period
type UserBalance struct {
	UserID       int64           `json:"user_id"`
	Name         string          `json:"name"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// OrgTotals holds the organization-wide totals for the requested period
type OrgTotals struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// Debt is the net obligation between the organization's two members,
// accumulated from shared expenses since the last settlement
type Debt struct {
	DebtorID     int64           `json:"debtor_id"`
	DebtorName   string          `json:"debtor_name"`
	CreditorID   int64           `json:"creditor_id"`
	CreditorName string          `json:"creditor_name"`
	Amount       decimal.Decimal `json:"amount"`
}

// Report is the full balance view: per-member totals, organization totals
// and the outstanding shared-expense debt (nil when settled up)
type Report struct {
	Organization OrgTotals     `json:"organization"`
	ByUser       []UserBalance `json:"by_user"`
	Debt         *Debt         `json:"debt"`
}

// Checkpoint marks a moment at which the shared-expense debt was considered
// paid. Append-only: the latest checkpoint is the baseline for all future
// debt computation.
type Checkpoint struct {
	ID             int64           `json:"id"`
	OrganizationID int64           `json:"organization_id"`
	Amount         decimal.Decimal `json:"amount"`
	Note           *string         `json:"note,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Entry is one persisted transaction row as fetched for aggregation
type Entry struct {
	UserID   int64
	UserName string
	Amount   decimal.Decimal
	Kind     transaction.Type
}

// SharedExpense is one shared expense row as fetched for debt computation
type SharedExpense struct {
	UserID   int64
	UserName string
	Amount   decimal.Decimal
}

// Member identifies an organization member for single-payer debt lookup
type Member struct {
	UserID int64
	Name   string
}
