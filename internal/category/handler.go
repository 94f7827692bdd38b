package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ncastelli/hogarfin/pkg/middleware"
	"github.com/ncastelli/hogarfin/pkg/response"
)

// Handler handles HTTP requests for category operations
type Handler struct {
	service *Service
}

// NewHandler creates a new category handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for category endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Patch("/{id}", h.Rename)
	r.Delete("/{id}", h.Delete)

	return r
}

// List handles GET /categories
// @Summary List the organization's categories grouped by type
// @Tags categories
// @Produce json
// @Success 200 {object} GroupedResponse
// @Router /categories [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	grouped, err := h.service.List(r.Context(), session.OrganizationID)
	if err != nil {
		response.InternalError(w, "Failed to list categories")
		return
	}

	response.JSON(w, http.StatusOK, grouped)
}

// Create handles POST /categories
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category data"
// @Success 201 {object} CategoryResponse
// @Router /categories [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), session.OrganizationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidType):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create category")
		}
		return
	}

	response.JSON(w, http.StatusCreated, created.ToResponse())
}

// Rename handles PATCH /categories/{id}
// @Summary Rename a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body UpdateCategoryRequest true "New name"
// @Success 200 {object} CategoryResponse
// @Router /categories/{id} [patch]
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	updated, err := h.service.Rename(r.Context(), id, session.OrganizationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			response.NotFound(w, "Category not found")
		case errors.Is(err, ErrInvalidName):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to update category")
		}
		return
	}

	response.JSON(w, http.StatusOK, updated.ToResponse())
}

// Delete handles DELETE /categories/{id}
// @Summary Delete a category
// @Tags categories
// @Param id path int true "Category ID"
// @Success 200 {object} response.APIResponse
// @Router /categories/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, session.OrganizationID); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		response.InternalError(w, "Failed to delete category")
		return
	}

	response.Message(w, http.StatusOK, "Category deleted", nil)
}
