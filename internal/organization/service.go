package organization

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationUsed     = errors.New("invitation already used")
	ErrMissingFields      = errors.New("missing required fields")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
)

const bcryptCost = 12

// Service handles organization and invitation business logic
type Service struct {
	repo *Repository
}

// NewService creates a new organization service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// CreateInvitation issues a fresh single-use token for the organization
func (s *Service) CreateInvitation(ctx context.Context, organizationID int64) (*Invitation, error) {
	return s.repo.CreateInvitation(ctx, organizationID, uuid.NewString())
}

// Preview resolves an invitation token to the organization it opens
func (s *Service) Preview(ctx context.Context, token string) (*Organization, error) {
	inv, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	org, err := s.repo.GetByID(ctx, inv.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrInvitationNotFound
	}

	return org, nil
}

// Accept creates the invitee's account as a MEMBER of the inviting
// organization and consumes the token
func (s *Service) Accept(ctx context.Context, token string, req *AcceptInvitationRequest) (*Joined, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	inv, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	joined, err := s.repo.AcceptInvitation(ctx, inv, req.Name, req.Email, string(hash))
	if err != nil {
		return nil, err
	}
	if joined == nil {
		return nil, ErrInvitationUsed
	}

	return joined, nil
}

func (s *Service) lookup(ctx context.Context, token string) (*Invitation, error) {
	inv, err := s.repo.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvitationNotFound
	}
	if inv.Used {
		return nil, ErrInvitationUsed
	}
	return inv, nil
}
