package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type classifies a transaction as income or expense
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Valid reports whether t is a known transaction type
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a confirmed financial transaction ("movimiento")
type Transaction struct {
	ID             int64           `json:"id"`
	OrganizationID int64           `json:"organization_id"`
	CreatedByID    int64           `json:"created_by_id"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Type           Type            `json:"type"`
	CategoryID     int64           `json:"category_id"`
	IsShared       bool            `json:"is_shared"`
	Installment    *string         `json:"installment,omitempty"` // "current/total"
	CreatedAt      time.Time       `json:"created_at"`

	// Populated via JOIN
	CategoryName  string `json:"category_name,omitempty"`
	CreatedByName string `json:"created_by_name,omitempty"`
}
