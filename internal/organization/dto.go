package organization

import "time"

// AcceptInvitationRequest represents the request body for joining an
// organization through an invitation
type AcceptInvitationRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// InvitationResponse represents the response for a created invitation
type InvitationResponse struct {
	Token     string `json:"token"`
	CreatedAt string `json:"created_at"`
}

// PreviewResponse tells an invitee which organization they would join
type PreviewResponse struct {
	OrganizationName string `json:"organization_name"`
}

// JoinedResponse represents the response for an accepted invitation
type JoinedResponse struct {
	UserID         int64  `json:"user_id"`
	OrganizationID int64  `json:"organization_id"`
	Role           string `json:"role"`
	Token          string `json:"token,omitempty"`
}

// ToResponse converts an Invitation model to an InvitationResponse DTO
func (i *Invitation) ToResponse() *InvitationResponse {
	return &InvitationResponse{
		Token:     i.Token,
		CreatedAt: i.CreatedAt.UTC().Format(time.RFC3339),
	}
}
