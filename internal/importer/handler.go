package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ncastelli/hogarfin/internal/statement"
	"github.com/ncastelli/hogarfin/internal/transaction"
	"github.com/ncastelli/hogarfin/pkg/middleware"
	"github.com/ncastelli/hogarfin/pkg/response"
)

// maxUploadSize bounds statement uploads; real statements are well under 10MB
const maxUploadSize = 10 << 20

// Handler handles HTTP requests for the statement import flow
type Handler struct {
	service *Service
}

// NewHandler creates a new importer handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for import endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Parse)
	r.Post("/confirm", h.Confirm)

	return r
}

// Parse handles POST /imports
// @Summary Parse an uploaded bank statement into transactions
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Statement file (.xlsx for SANTANDER, .pdf for BBVA)"
// @Param bank formData string true "Bank identifier (SANTANDER or BBVA)"
// @Success 200 {object} ParseResponse
// @Router /imports [post]
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSession(r.Context()); !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart request")
		return
	}

	bank, err := statement.ParseBankName(r.FormValue("bank"))
	if err != nil {
		response.BadRequest(w, fmt.Sprintf("Unsupported bank %q", r.FormValue("bank")))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "A statement file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(w, "Failed to read the uploaded file")
		return
	}

	parsed, err := h.service.Parse(data, bank)
	if err != nil {
		if errors.Is(err, ErrNoTransactions) {
			response.BadRequest(w, "No transactions found in the statement")
			return
		}
		response.BadRequest(w, "Failed to parse the statement")
		return
	}

	response.JSON(w, http.StatusOK, parsed)
}

// Confirm handles POST /imports/confirm
// @Summary Save categorized transactions from a parsed statement
// @Tags imports
// @Accept json
// @Produce json
// @Param request body ConfirmRequest true "Categorized transactions"
// @Success 201 {object} ConfirmResponse
// @Router /imports/confirm [post]
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	imported, err := h.service.Confirm(r.Context(), session.OrganizationID, session.UserID, &req)
	if err != nil {
		var missing *MissingCategoriesError
		switch {
		case errors.As(err, &missing):
			response.BadRequest(w, missing.Error())
		case errors.Is(err, ErrNoEntries),
			errors.Is(err, ErrInvalidEntry),
			errors.Is(err, transaction.ErrCategoryNotFound),
			errors.Is(err, transaction.ErrCategoryMismatch):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to import transactions")
		}
		return
	}

	response.JSON(w, http.StatusCreated, &ConfirmResponse{Imported: imported})
}
