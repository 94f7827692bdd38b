package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ncastelli/hogarfin/pkg/middleware"
	"github.com/ncastelli/hogarfin/pkg/response"
)

// Handler handles HTTP requests for authentication and user operations
type Handler struct {
	service   *Service
	jwtSecret string
}

// NewHandler creates a new user handler
func NewHandler(service *Service, jwtSecret string) *Handler {
	return &Handler{service: service, jwtSecret: jwtSecret}
}

// Routes returns the router for the public auth endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	return r
}

// Register handles POST /auth/register
// @Summary Register a user and their household organization
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} SessionResponse
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	session, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.BadRequest(w, "Name, email, password and organization name are required")
		case errors.Is(err, ErrPasswordTooShort):
			response.BadRequest(w, "Password must be at least 8 characters")
		case errors.Is(err, ErrEmailAlreadyInUse):
			response.Conflict(w, "Email already in use")
		default:
			response.InternalError(w, "Failed to register")
		}
		return
	}

	h.issueSession(w, http.StatusCreated, session)
}

// Login handles POST /auth/login
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	session, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, ErrNoMembership):
			response.Forbidden(w, "User does not belong to an organization")
		default:
			response.InternalError(w, "Failed to log in")
		}
		return
	}

	h.issueSession(w, http.StatusOK, session)
}

// Logout handles POST /auth/logout
// @Summary Clear the session cookie
// @Tags auth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	response.Message(w, http.StatusOK, "Logged out", nil)
}

// Me handles GET /auth/me (mounted behind the auth middleware)
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Router /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	found, err := h.service.GetByID(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w, "Failed to get user")
		return
	}

	response.JSON(w, http.StatusOK, found.ToResponse())
}

// issueSession creates the session token, sets the cookie and writes the
// session payload
func (h *Handler) issueSession(w http.ResponseWriter, status int, session *Session) {
	token, err := middleware.CreateToken(h.jwtSecret, middleware.Session{
		UserID:         session.User.ID,
		OrganizationID: session.OrganizationID,
		Role:           session.Role,
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

	response.JSON(w, status, &SessionResponse{
		UserID:         session.User.ID,
		OrganizationID: session.OrganizationID,
		Role:           session.Role,
		Token:          token,
	})
}
