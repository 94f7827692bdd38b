package category

import (
	"context"
	"errors"
	"strings"

	"github.com/ncastelli/hogarfin/internal/transaction"
)

// Common errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidName      = errors.New("category name cannot be empty")
	ErrInvalidType      = errors.New("category type must be INCOME or EXPENSE")
)

// Service handles category business logic
type Service struct {
	repo *Repository
}

// NewService creates a new category service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a category to the organization
func (s *Service) Create(ctx context.Context, organizationID int64, req *CreateCategoryRequest) (*Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, ErrInvalidName
	}
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}

	return s.repo.Create(ctx, organizationID, req)
}

// List retrieves the organization's categories grouped by type
func (s *Service) List(ctx context.Context, organizationID int64) (*GroupedResponse, error) {
	categories, err := s.repo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	grouped := &GroupedResponse{
		Income:  []*CategoryResponse{},
		Expense: []*CategoryResponse{},
	}
	for _, c := range categories {
		if c.Type == transaction.TypeIncome {
			grouped.Income = append(grouped.Income, c.ToResponse())
		} else {
			grouped.Expense = append(grouped.Expense, c.ToResponse())
		}
	}

	return grouped, nil
}

// Rename changes a category's name; the type stays fixed
func (s *Service) Rename(ctx context.Context, id, organizationID int64, req *UpdateCategoryRequest) (*Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, ErrInvalidName
	}

	updated, err := s.repo.UpdateName(ctx, id, organizationID, req.Name)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrCategoryNotFound
	}

	return updated, nil
}

// Delete removes a category from the organization
func (s *Service) Delete(ctx context.Context, id, organizationID int64) error {
	deleted, err := s.repo.Delete(ctx, id, organizationID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}
	return nil
}
