package organization

import "time"

// Membership roles within an organization
const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// Organization represents a household sharing transactions and balances
type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Invitation is a single-use token that lets a new user join an organization
type Invitation struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	Token          string    `json:"token"`
	Used           bool      `json:"used"`
	CreatedAt      time.Time `json:"created_at"`
}

// Joined describes the membership created when an invitation is accepted
type Joined struct {
	UserID         int64
	OrganizationID int64
	Role           string
}
