package router

import (
	"net/http"

	"morishcart/internal/handler"
	"morishcart/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Checkout     *handler.CheckoutHandler
	Coupon       *handler.CouponHandler
	Product      *handler.ProductHandler
	Verification *handler.VerificationHandler
	Analytics    *handler.AnalyticsHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// The middleware order is Recovery -> Logging -> CORS; admin routes
// additionally require the API key and checkout creation is rate limited.
func New(h Handlers, limiter *middleware.RateLimiter, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public storefront routes
	r.With(limiter.Middleware).Post("/checkout/create", h.Checkout.Create)
	r.Post("/coupons/validate", h.Coupon.Validate)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.Product.List)
		r.Get("/{id}", h.Product.GetByID)
	})

	// Staff routes behind the API key
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(apiKey, logger))

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", h.Coupon.List)
			r.Post("/", h.Coupon.Create)
			r.Post("/{id}/status", h.Coupon.UpdateStatus)
			r.Delete("/{id}", h.Coupon.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Verification.List)
			r.Get("/{orderId}", h.Verification.GetByOrderID)
			r.Patch("/{orderId}", h.Verification.Update)
			r.Post("/{orderId}/clear-customer", h.Verification.ClearCustomerInfo)
		})

		r.Get("/analytics", h.Analytics.Summary)
	})

	return r
}
