package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for transaction dates
const DateLayout = "2006-01-02"

// CreateTransactionRequest represents the request body for creating a
// transaction
type CreateTransactionRequest struct {
	Date        string          `json:"date" validate:"required"` // YYYY-MM-DD
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Type        Type            `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	CategoryID  int64           `json:"category_id" validate:"required"`
	IsShared    bool            `json:"is_shared"`
	Installment *string         `json:"installment,omitempty"`
}

// UpdateTransactionRequest represents the request body for updating a
// transaction; only present fields change
type UpdateTransactionRequest struct {
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *Type            `json:"type,omitempty"`
	CategoryID  *int64           `json:"category_id,omitempty"`
	IsShared    *bool            `json:"is_shared,omitempty"`
	Installment *string          `json:"installment,omitempty"`
}

// ListFilters narrows the transaction listing
type ListFilters struct {
	Type       *Type
	CategoryID *int64
	DateFrom   *time.Time
	DateTo     *time.Time
}

// TransactionResponse represents the response for a single transaction
type TransactionResponse struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	Amount        string  `json:"amount"`
	Type          Type    `json:"type"`
	CategoryID    int64   `json:"category_id"`
	CategoryName  string  `json:"category_name,omitempty"`
	IsShared      bool    `json:"is_shared"`
	Installment   *string `json:"installment,omitempty"`
	CreatedByID   int64   `json:"created_by_id"`
	CreatedByName string  `json:"created_by_name,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// ToResponse converts a Transaction model to a TransactionResponse DTO
func (t *Transaction) ToResponse() *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		Date:          t.Date.Format(DateLayout),
		Description:   t.Description,
		Amount:        t.Amount.StringFixed(2),
		Type:          t.Type,
		CategoryID:    t.CategoryID,
		CategoryName:  t.CategoryName,
		IsShared:      t.IsShared,
		Installment:   t.Installment,
		CreatedByID:   t.CreatedByID,
		CreatedByName: t.CreatedByName,
		CreatedAt:     t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
