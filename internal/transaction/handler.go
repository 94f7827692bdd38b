package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ncastelli/hogarfin/pkg/middleware"
	"github.com/ncastelli/hogarfin/pkg/response"
)

// Handler handles HTTP requests for transaction operations
type Handler struct {
	service *Service
}

// NewHandler creates a new transaction handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for transaction endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// List handles GET /transactions
// @Summary List the organization's transactions, newest first
// @Tags transactions
// @Produce json
// @Param type query string false "Filter by type (INCOME or EXPENSE)"
// @Param category_id query int false "Filter by category"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} TransactionResponse
// @Router /transactions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	filters, err := parseListFilters(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	txs, err := h.service.List(r.Context(), session.OrganizationID, filters)
	if err != nil {
		response.InternalError(w, "Failed to list transactions")
		return
	}

	resp := make([]*TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, tx.ToResponse())
	}

	response.JSON(w, http.StatusOK, resp)
}

// Create handles POST /transactions
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction data"
// @Success 201 {object} TransactionResponse
// @Router /transactions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), session.OrganizationID, session.UserID, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to create transaction")
		return
	}

	response.JSON(w, http.StatusCreated, created.ToResponse())
}

// Get handles GET /transactions/{id}
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} TransactionResponse
// @Router /transactions/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	tx, err := h.service.GetByID(r.Context(), id, session.OrganizationID)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			response.NotFound(w, "Transaction not found")
			return
		}
		response.InternalError(w, "Failed to get transaction")
		return
	}

	response.JSON(w, http.StatusOK, tx.ToResponse())
}

// Update handles PATCH /transactions/{id}
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} TransactionResponse
// @Router /transactions/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, session.OrganizationID, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update transaction")
		return
	}

	response.JSON(w, http.StatusOK, updated.ToResponse())
}

// Delete handles DELETE /transactions/{id}
// @Summary Delete a transaction
// @Tags transactions
// @Param id path int true "Transaction ID"
// @Success 200 {object} response.APIResponse
// @Router /transactions/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, session.OrganizationID); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			response.NotFound(w, "Transaction not found")
			return
		}
		response.InternalError(w, "Failed to delete transaction")
		return
	}

	response.Message(w, http.StatusOK, "Transaction deleted", nil)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		response.NotFound(w, "Transaction not found")
	case errors.Is(err, ErrCategoryNotFound):
		response.NotFound(w, "Category not found")
	case errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidDescription),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrCategoryMismatch):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}

func parseListFilters(r *http.Request) (*ListFilters, error) {
	filters := &ListFilters{}
	q := r.URL.Query()

	if raw := q.Get("type"); raw != "" {
		t := Type(raw)
		if !t.Valid() {
			return nil, errors.New("type must be INCOME or EXPENSE")
		}
		filters.Type = &t
	}
	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.New("category_id must be an integer")
		}
		filters.CategoryID = &id
	}
	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, errors.New("from must use the YYYY-MM-DD format")
		}
		filters.DateFrom = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, errors.New("to must use the YYYY-MM-DD format")
		}
		filters.DateTo = &to
	}

	return filters, nil
}
