package transaction

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidDate         = errors.New("date must use the YYYY-MM-DD format")
	ErrInvalidDescription  = errors.New("description cannot be empty")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidType         = errors.New("type must be INCOME or EXPENSE")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryMismatch    = errors.New("category type does not match transaction type")
)

// CategoryLookup resolves a category's kind within an organization
type CategoryLookup interface {
	Kind(ctx context.Context, id, organizationID int64) (Type, bool, error)
}

// Service handles transaction business logic
type Service struct {
	repo       *Repository
	categories CategoryLookup
}

// NewService creates a new transaction service
func NewService(repo *Repository, categories CategoryLookup) *Service {
	return &Service{repo: repo, categories: categories}
}

// Create validates and stores a new transaction
func (s *Service) Create(ctx context.Context, organizationID, userID int64, req *CreateTransactionRequest) (*Transaction, error) {
	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return nil, ErrInvalidDescription
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}
	if err := s.checkCategory(ctx, req.CategoryID, organizationID, req.Type); err != nil {
		return nil, err
	}

	tx := &Transaction{
		OrganizationID: organizationID,
		CreatedByID:    userID,
		Date:           date,
		Description:    req.Description,
		Amount:         req.Amount,
		Type:           req.Type,
		CategoryID:     req.CategoryID,
		IsShared:       req.IsShared,
		Installment:    req.Installment,
	}

	return s.repo.Create(ctx, tx)
}

// List retrieves the organization's transactions honoring the filters
func (s *Service) List(ctx context.Context, organizationID int64, filters *ListFilters) ([]*Transaction, error) {
	return s.repo.List(ctx, organizationID, filters)
}

// GetByID retrieves a single transaction scoped to the organization
func (s *Service) GetByID(ctx context.Context, id, organizationID int64) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id, organizationID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

// Update applies the present fields of the request to an existing transaction
func (s *Service) Update(ctx context.Context, id, organizationID int64, req *UpdateTransactionRequest) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id, organizationID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}

	if req.Date != nil {
		date, err := time.Parse(DateLayout, *req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		tx.Date = date
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		if desc == "" {
			return nil, ErrInvalidDescription
		}
		tx.Description = desc
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, ErrInvalidAmount
		}
		tx.Amount = *req.Amount
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, ErrInvalidType
		}
		tx.Type = *req.Type
	}
	if req.CategoryID != nil {
		tx.CategoryID = *req.CategoryID
	}
	if req.IsShared != nil {
		tx.IsShared = *req.IsShared
	}
	if req.Installment != nil {
		tx.Installment = req.Installment
	}

	// Re-check whenever the pairing could have changed.
	if req.CategoryID != nil || req.Type != nil {
		if err := s.checkCategory(ctx, tx.CategoryID, organizationID, tx.Type); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, tx)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTransactionNotFound
	}

	return updated, nil
}

// Delete removes a transaction scoped to the organization
func (s *Service) Delete(ctx context.Context, id, organizationID int64) error {
	deleted, err := s.repo.Delete(ctx, id, organizationID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}
	return nil
}

func (s *Service) checkCategory(ctx context.Context, categoryID, organizationID int64, txType Type) error {
	kind, found, err := s.categories.Kind(ctx, categoryID, organizationID)
	if err != nil {
		return err
	}
	if !found {
		return ErrCategoryNotFound
	}
	if kind != txType {
		return ErrCategoryMismatch
	}
	return nil
}
