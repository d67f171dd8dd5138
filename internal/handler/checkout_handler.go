package handler

import (
	"encoding/json"
	"net/http"

	"morishcart/internal/model"
	"morishcart/internal/service"

	"github.com/rs/zerolog"
)

// checkoutResponse wraps the checkout result in the success envelope.
type checkoutResponse struct {
	Success bool `json:"success"`
	*model.CheckoutResult
}

// CheckoutHandler handles order creation requests.
type CheckoutHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.OrderService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Create handles POST /checkout/create requests.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "failed to create order, please try again", h.logger)
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		// The original order was already captured; nothing new was created.
		status = http.StatusOK
	}

	writeJSON(w, status, checkoutResponse{Success: true, CheckoutResult: result})
}
