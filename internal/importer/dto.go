package importer

import (
	"github.com/shopspring/decimal"

	"github.com/ncastelli/hogarfin/internal/statement"
	"github.com/ncastelli/hogarfin/internal/transaction"
)

// ParsedTransaction is one extracted statement line, ready for the user to
// categorize before confirming the import
type ParsedTransaction struct {
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Amount      string           `json:"amount"`
	Type        transaction.Type `json:"type"`
	Installment *string          `json:"installment,omitempty"`
}

// ParseResponse represents the response for a parsed statement
type ParseResponse struct {
	StatementDate string              `json:"statement_date"`
	Transactions  []ParsedTransaction `json:"transactions"`
}

// ConfirmEntry is one categorized transaction the user approved for saving
type ConfirmEntry struct {
	Date        string           `json:"date" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Amount      decimal.Decimal  `json:"amount" validate:"required"`
	Type        transaction.Type `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	CategoryID  int64            `json:"category_id"`
	IsShared    bool             `json:"is_shared"`
	Installment *string          `json:"installment,omitempty"`
}

// ConfirmRequest represents the request body for confirming an import
type ConfirmRequest struct {
	Transactions []ConfirmEntry `json:"transactions" validate:"required"`
}

// ConfirmResponse represents the response for a confirmed import
type ConfirmResponse struct {
	Imported int `json:"imported"`
}

func toParseResponse(result *statement.Result) *ParseResponse {
	resp := &ParseResponse{
		StatementDate: result.StatementDate.Format(transaction.DateLayout),
		Transactions:  make([]ParsedTransaction, 0, len(result.Transactions)),
	}
	for _, tx := range result.Transactions {
		parsed := ParsedTransaction{
			Date:        tx.Date.Format(transaction.DateLayout),
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Type:        transaction.Type(tx.Kind),
		}
		if tx.Installment != "" {
			installment := tx.Installment
			parsed.Installment = &installment
		}
		resp.Transactions = append(resp.Transactions, parsed)
	}
	return resp
}
