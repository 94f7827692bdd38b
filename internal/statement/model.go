package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bank identifies which bank produced a statement file
type Bank string

const (
	BankSantander Bank = "SANTANDER"
	BankBBVA      Bank = "BBVA"
)

// Kind classifies a transaction as money in or money out
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

// Transaction is a single line item extracted from a statement.
// Amount is always non-negative; Kind carries the direction.
// Date is the statement date, not the original purchase date.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        Kind            `json:"kind"`
	Installment string          `json:"installment,omitempty"` // "current/total", e.g. "3/12"
}

// Result is the outcome of parsing one statement file
type Result struct {
	Transactions  []Transaction `json:"transactions"`
	StatementDate time.Time     `json:"statement_date"`
}
