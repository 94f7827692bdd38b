package balance

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

// Handler handles HTTP requests for balance and settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetBalance)
	r.Post("/settle", h.Settle)

	return r
}

// GetBalance handles GET /balance?month=&year=
// @Summary Get the organization balance report
// @Description Per-member income/expense totals for the requested month plus the outstanding shared-expense debt since the last settlement
// @Tags balance
// @Produce json
// @Param month query int false "Month (1-12), requires year"
// @Param year query int false "Year, requires month"
// @Success 200 {object} Report
// @Router /balance [get]
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	from, to, err := monthRange(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Invalid month or year")
		return
	}

	report, err := h.service.GetBalance(r.Context(), session.OrganizationID, from, to)
	if err != nil {
		response.InternalError(w, "Failed to compute balance")
		return
	}

	response.JSON(w, http.StatusOK, report)
}

// Settle handles POST /balance/settle
// @Summary Settle the shared-expense debt
// @Description Records a settlement checkpoint; future debt computation starts from this instant
// @Tags balance
// @Accept json
// @Produce json
// @Param request body SettleRequest true "Settled amount and optional note"
// @Success 201 {object} CheckpointResponse
// @Router /balance/settle [post]
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	checkpoint, err := h.service.SettleDebt(r.Context(), session.OrganizationID, req.Amount, req.Note)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			response.BadRequest(w, "Amount must be greater than zero")
			return
		}
		response.InternalError(w, "Failed to settle debt")
		return
	}

	response.Message(w, http.StatusCreated, "Debt settled", checkpoint.ToResponse())
}

// monthRange converts month/year query params into an inclusive date range
// covering that calendar month. Both params must be present to apply.
func monthRange(monthRaw, yearRaw string) (*time.Time, *time.Time, error) {
	if monthRaw == "" || yearRaw == "" {
		return nil, nil, nil
	}

	month, err := strconv.Atoi(monthRaw)
	if err != nil || month < 1 || month > 12 {
		return nil, nil, errors.New("invalid month")
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		return nil, nil, errors.New("invalid year")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Second)

	return &from, &to, nil
}
