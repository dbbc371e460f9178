package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harshluthra/ExpenseSync/internal/user"
	"github.com/harshluthra/ExpenseSync/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.GetByUser)

	return r
}

// Create handles POST /expenses
// @Summary      Create a new expense
// @Description  Create an expense with share calculation using the EQUAL or EXACT strategy
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.service.CreateExpense(r.Context(), &req)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		// Everything else from the creation path is a validation failure
		// (payer not a participant, bad split type, share mismatch).
		response.BadRequest(w, err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, resp)
}

// GetByUser handles GET /expenses?email=
// @Summary      List a user's expenses
// @Description  List the expenses a user participates in, with their net position per expense
// @Tags         expenses
// @Produce      json
// @Param        email query string true "Participant email"
// @Param        show_participants query bool false "Include per-participant breakdowns"
// @Success      200 {object} response.APIResponse{data=UserExpenseSummary}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses [get]
func (h *Handler) GetByUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		response.BadRequest(w, "email query parameter is required")
		return
	}
	showParticipants := r.URL.Query().Get("show_participants") == "true"

	summary, err := h.service.GetUserExpenseSummary(r.Context(), email, showParticipants)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list expenses")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}
