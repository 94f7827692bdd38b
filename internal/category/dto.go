package category

import (
	"time"

	"github.com/ncastelli/hogarfin/internal/transaction"
)

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name string           `json:"name" validate:"required"`
	Type transaction.Type `json:"type" validate:"required,oneof=INCOME EXPENSE"`
}

// UpdateCategoryRequest represents the request body for renaming a category
type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryResponse represents the response for a single category
type CategoryResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Type      transaction.Type `json:"type"`
	CreatedAt string           `json:"created_at"`
}

// GroupedResponse lists an organization's categories split by type
type GroupedResponse struct {
	Income  []*CategoryResponse `json:"income"`
	Expense []*CategoryResponse `json:"expense"`
}

// ToResponse converts a Category model to a CategoryResponse DTO
func (c *Category) ToResponse() *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
