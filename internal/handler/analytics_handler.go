package handler

import (
	"net/http"

	"morishcart/internal/service"

	"github.com/rs/zerolog"
)

// AnalyticsHandler serves the admin dashboard summary.
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("handler", "analytics").Logger(),
	}
}

// Summary handles GET /api/admin/analytics requests.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to compute analytics", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
