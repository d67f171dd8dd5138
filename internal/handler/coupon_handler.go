package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"morishcart/internal/model"
	"morishcart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CouponHandler handles coupon validation and admin management requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

type validateCouponRequest struct {
	Code  string          `json:"code"`
	Total decimal.Decimal `json:"total"`
}

// Validate handles POST /coupons/validate requests.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Validate(r.Context(), req.Code, req.Total)
	if err != nil {
		writeDomainError(w, err, "failed to validate coupon", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// List handles GET /api/admin/coupons requests.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to get coupons", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupons)
}

// Create handles POST /api/admin/coupons requests.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "failed to create coupon", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

type couponStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

// UpdateStatus handles POST /api/admin/coupons/{id}/status requests.
func (h *CouponHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := couponID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid coupon ID", h.logger)
		return
	}

	var req couponStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		writeError(w, http.StatusBadRequest, "isActive is required", h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, *req.IsActive); err != nil {
		writeDomainError(w, err, "failed to update coupon", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Delete handles DELETE /api/admin/coupons/{id} requests.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := couponID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid coupon ID", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete coupon", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func couponID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	return strconv.ParseInt(raw, 10, 64)
}
