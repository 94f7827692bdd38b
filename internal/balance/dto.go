package balance

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettleRequest represents the request body for settling the shared debt
type SettleRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   *string         `json:"note,omitempty"`
}

// CheckpointResponse represents a recorded settlement checkpoint
type CheckpointResponse struct {
	ID             int64   `json:"id"`
	OrganizationID int64   `json:"organization_id"`
	Amount         string  `json:"amount"`
	Note           *string `json:"note,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// ToResponse converts a Checkpoint model to a CheckpointResponse DTO
func (c *Checkpoint) ToResponse() *CheckpointResponse {
	return &CheckpointResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Amount:         c.Amount.StringFixed(2),
		Note:           c.Note,
		CreatedAt:      c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
