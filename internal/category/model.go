package category

import (
	"time"

	"github.com/ncastelli/hogarfin/internal/transaction"
)

// Category labels transactions within an organization. Its type (income or
// expense) is fixed at creation: a category can be renamed but never change
// sides.
type Category struct {
	ID             int64            `json:"id"`
	OrganizationID int64            `json:"organization_id"`
	Name           string           `json:"name"`
	Type           transaction.Type `json:"type"`
	CreatedAt      time.Time        `json:"created_at"`
}
