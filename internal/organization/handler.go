package organization

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ncastelli/hogarfin/pkg/middleware"
	"github.com/ncastelli/hogarfin/pkg/response"
)

// Handler handles HTTP requests for invitation operations
type Handler struct {
	service   *Service
	jwtSecret string
}

// NewHandler creates a new organization handler
func NewHandler(service *Service, jwtSecret string) *Handler {
	return &Handler{service: service, jwtSecret: jwtSecret}
}

// Routes returns the router for invitation endpoints. Token preview and
// accept are public; creating invitations requires an OWNER or ADMIN
// session.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{token}", h.Preview)
	r.Post("/{token}/accept", h.Accept)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.Auth(h.jwtSecret))
		pr.Use(middleware.RequireRole(RoleOwner, RoleAdmin))
		pr.Post("/", h.Create)
	})

	return r
}

// Create handles POST /invitations
// @Summary Create an invitation token for the caller's organization
// @Tags invitations
// @Produce json
// @Success 201 {object} InvitationResponse
// @Router /invitations [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	inv, err := h.service.CreateInvitation(r.Context(), session.OrganizationID)
	if err != nil {
		response.InternalError(w, "Failed to create invitation")
		return
	}

	response.JSON(w, http.StatusCreated, inv.ToResponse())
}

// Preview handles GET /invitations/{token}
// @Summary Look up which organization an invitation opens
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} PreviewResponse
// @Router /invitations/{token} [get]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	org, err := h.service.Preview(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.writeInvitationError(w, err, "Failed to look up invitation")
		return
	}

	response.JSON(w, http.StatusOK, &PreviewResponse{OrganizationName: org.Name})
}

// Accept handles POST /invitations/{token}/accept
// @Summary Join an organization through an invitation
// @Tags invitations
// @Accept json
// @Produce json
// @Param token path string true "Invitation token"
// @Param request body AcceptInvitationRequest true "New member data"
// @Success 201 {object} JoinedResponse
// @Router /invitations/{token}/accept [post]
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	var req AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	joined, err := h.service.Accept(r.Context(), chi.URLParam(r, "token"), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.BadRequest(w, "Name, email and password are required")
		case errors.Is(err, ErrPasswordTooShort):
			response.BadRequest(w, "Password must be at least 8 characters")
		case errors.Is(err, ErrEmailAlreadyInUse):
			response.Conflict(w, "Email already in use")
		default:
			h.writeInvitationError(w, err, "Failed to accept invitation")
		}
		return
	}

	token, err := middleware.CreateToken(h.jwtSecret, middleware.Session{
		UserID:         joined.UserID,
		OrganizationID: joined.OrganizationID,
		Role:           joined.Role,
	})
	if err != nil {
		response.InternalError(w, "Failed to create session token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(middleware.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.JSON(w, http.StatusCreated, &JoinedResponse{
		UserID:         joined.UserID,
		OrganizationID: joined.OrganizationID,
		Role:           joined.Role,
		Token:          token,
	})
}

func (h *Handler) writeInvitationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvitationNotFound):
		response.NotFound(w, "Invitation not found")
	case errors.Is(err, ErrInvitationUsed):
		response.Conflict(w, "Invitation already used")
	default:
		response.InternalError(w, fallback)
	}
}
