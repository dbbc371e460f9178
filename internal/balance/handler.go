package balance

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harshluthra/ExpenseSync/internal/user"
	"github.com/harshluthra/ExpenseSync/pkg/response"
)

// Handler handles HTTP requests for balance queries
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

	r.Get("/raw", h.Raw)
	r.Get("/simplified", h.Simplified)

	return r
}

// Raw handles GET /balances/raw?email=
// @Summary      Raw balances for a user
// @Description  Net pairwise position against every counterparty, one transaction each
// @Tags         balances
// @Produce      json
// @Param        email query string true "User email"
// @Success      200 {object} response.APIResponse{data=RawBalanceResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /balances/raw [get]
func (h *Handler) Raw(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		response.BadRequest(w, "email query parameter is required")
		return
	}

	resp, err := h.service.RawBalance(r.Context(), email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute raw balance")
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

// Simplified handles GET /balances/simplified?email=
// @Summary      Simplified balances for a user
// @Description  Minimal settling transactions involving the user, from the global debt simplification
// @Tags         balances
// @Produce      json
// @Param        email query string true "User email"
// @Success      200 {object} response.APIResponse{data=SimplifiedBalanceResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /balances/simplified [get]
func (h *Handler) Simplified(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		response.BadRequest(w, "email query parameter is required")
		return
	}

	resp, err := h.service.SimplifiedBalance(r.Context(), email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute simplified balance")
		return
	}

	response.JSON(w, http.StatusOK, resp)
}
