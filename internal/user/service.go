package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrNoMembership       = errors.New("user has no organization")
)

const bcryptCost = 12

// Session describes an authenticated user and their organization context
type Session struct {
	User           *User
	OrganizationID int64
	Role           string
}

// Service handles user business logic
type Service struct {
	repo *Repository
}

// NewService creates a new user service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new user together with their organization
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Session, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.OrganizationName == "" {
		return nil, ErrMissingFields
	}
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	created, organizationID, err := s.repo.Register(ctx, req.Name, req.Email, string(hash), req.OrganizationName, slugify(req.OrganizationName))
	if err != nil {
		return nil, err
	}

	return &Session{User: created, OrganizationID: organizationID, Role: "OWNER"}, nil
}

// Login verifies credentials and returns the user's session context
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*Session, error) {
	found, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	membership, err := s.repo.MembershipForUser(ctx, found.ID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrNoMembership
	}

	return &Session{User: found, OrganizationID: membership.OrganizationID, Role: membership.Role}, nil
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrUserNotFound
	}
	return found, nil
}

var (
	slugAccents = strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
		"ä", "a", "ë", "e", "ï", "i", "ö", "o", "ü", "u", "ñ", "n",
	)
	slugInvalid = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpacing = regexp.MustCompile(`\s+`)
)

// slugify converts an organization name into a URL slug:
// "Mi Organización" -> "mi-organizacion"
func slugify(name string) string {
	s := strings.ToLower(name)
	s = slugAccents.Replace(s)
	s = slugInvalid.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return slugSpacing.ReplaceAllString(s, "-")
}
