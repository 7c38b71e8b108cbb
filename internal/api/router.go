package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tailtown/pricingservice/internal/health"
	"github.com/tailtown/pricingservice/internal/service"
)

// NewRouter assembles the HTTP surface.
func NewRouter(quotes *service.QuoteService, admin *service.AdminService, checker *health.Checker) http.Handler {
	quoteHandler := NewQuoteHandler(quotes)
	adminHandler := NewAdminHandler(admin)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Recovery)
	r.Use(Metrics)

	r.Get("/health", checker.HandleHealth)
	r.Get("/health/ready", checker.HandleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/tenants/{tenant}", func(r chi.Router) {
		r.Use(RequestContext)
		r.Use(Tracing)
		r.Use(Logging)

		r.Post("/deposits/calculate", quoteHandler.CalculateDeposit)
		r.Post("/deposits/refund", quoteHandler.CalculateRefund)
		r.Post("/multi-pet/calculate-pricing", quoteHandler.CalculateMultiPet)
		r.Post("/pricing/calculate", quoteHandler.CalculatePrice)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/rules/{kind}", adminHandler.ListRules)
			r.Put("/rules/{kind}", adminHandler.UpsertRule)
			r.Delete("/rules/{kind}/{id}", adminHandler.DeleteRule)

			r.Get("/deposit-config", adminHandler.GetDepositConfig)
			r.Put("/deposit-config", adminHandler.PutDepositConfig)

			r.Get("/capacities", adminHandler.ListCapacities)
			r.Put("/capacities/{suiteType}", adminHandler.UpsertCapacity)
		})
	})

	return r
}
