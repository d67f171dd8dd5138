package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"morishcart/internal/model"
	"morishcart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// VerificationHandler handles the staff-facing order verification requests.
type VerificationHandler struct {
	verifications service.VerificationService
	orders        service.OrderService
	logger        zerolog.Logger
}

// NewVerificationHandler creates a new verification handler.
func NewVerificationHandler(
	verifications service.VerificationService,
	orders service.OrderService,
	logger zerolog.Logger,
) *VerificationHandler {
	return &VerificationHandler{
		verifications: verifications,
		orders:        orders,
		logger:        logger.With().Str("handler", "verification").Logger(),
	}
}

// List handles GET /api/admin/orders requests. Supports status,
// customerPhone and limit query parameters.
func (h *VerificationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.VerificationFilter{
		Status:        model.VerificationStatus(r.URL.Query().Get("status")),
		CustomerPhone: r.URL.Query().Get("customerPhone"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit", h.logger)
			return
		}
		filter.Limit = limit
	}

	verifications, err := h.verifications.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, "failed to list orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, verifications)
}

// orderDetail combines the verification record with the captured order.
type orderDetail struct {
	Verification *model.OrderVerification `json:"verification"`
	Order        *model.Order             `json:"order"`
	Items        []model.OrderItem        `json:"items"`
}

// GetByOrderID handles GET /api/admin/orders/{orderId} requests.
func (h *VerificationHandler) GetByOrderID(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	verification, err := h.verifications.GetByOrderID(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, "failed to get order", h.logger)
		return
	}

	order, items, err := h.orders.GetByID(r.Context(), verification.OrderID)
	if err != nil {
		writeDomainError(w, err, "failed to get order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderDetail{
		Verification: verification,
		Order:        order,
		Items:        items,
	})
}

// updateOrderRequest carries the whitelisted verification fields plus an
// optional analytics order status transition.
type updateOrderRequest struct {
	model.VerificationUpdate
	OrderStatus *model.OrderStatus `json:"orderStatus,omitempty"`
}

// Update handles PATCH /api/admin/orders/{orderId} requests. Unknown fields
// in the payload are ignored; only the whitelisted set is ever applied.
func (h *VerificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.VerificationUpdate.IsEmpty() && req.OrderStatus == nil {
		writeError(w, http.StatusBadRequest, model.ErrNoFieldsToUpdate.Message, h.logger)
		return
	}

	if !req.VerificationUpdate.IsEmpty() {
		if err := h.verifications.Update(r.Context(), orderID, req.VerificationUpdate); err != nil {
			writeDomainError(w, err, "failed to update order", h.logger)
			return
		}
	}

	if req.OrderStatus != nil {
		if err := h.orders.UpdateStatus(r.Context(), orderID, *req.OrderStatus); err != nil {
			writeDomainError(w, err, "failed to update order", h.logger)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ClearCustomerInfo handles POST /api/admin/orders/{orderId}/clear-customer
// requests. Only the customer name and phone are removed.
func (h *VerificationHandler) ClearCustomerInfo(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	if err := h.verifications.ClearCustomerInfo(r.Context(), orderID); err != nil {
		writeDomainError(w, err, "failed to clear customer info", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
