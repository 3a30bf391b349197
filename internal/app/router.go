package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rentier-erp/rentier-erp/internal/billing"
	"github.com/rentier-erp/rentier-erp/internal/masterdata/clients"
	"github.com/rentier-erp/rentier-erp/internal/masterdata/owners"
	"github.com/rentier-erp/rentier-erp/internal/masterdata/units"
	"github.com/rentier-erp/rentier-erp/internal/observability"
	"github.com/rentier-erp/rentier-erp/internal/ownership"
	"github.com/rentier-erp/rentier-erp/internal/payments"
	"github.com/rentier-erp/rentier-erp/internal/reports"
	"github.com/rentier-erp/rentier-erp/internal/taxes"
	"github.com/rentier-erp/rentier-erp/internal/tenancy"
	"github.com/rentier-erp/rentier-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	OwnersHandler    *owners.Handler
	UnitsHandler     *units.Handler
	ClientsHandler   *clients.Handler
	OwnershipHandler *ownership.Handler
	TenancyHandler   *tenancy.Handler
	BillingHandler   *billing.Handler
	PaymentsHandler  *payments.Handler
	TaxesHandler     *taxes.Handler
	ReportsHandler   *reports.Handler
	JobHandler       *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with Rentier defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/masterdata", func(r chi.Router) {
		if params.OwnersHandler != nil {
			r.Route("/owners", params.OwnersHandler.MountRoutes)
		}
		if params.UnitsHandler != nil {
			r.Route("/units", params.UnitsHandler.MountRoutes)
		}
		if params.ClientsHandler != nil {
			r.Route("/clients", params.ClientsHandler.MountRoutes)
		}
	})

	if params.OwnershipHandler != nil {
		r.Route("/ownerships", params.OwnershipHandler.MountRoutes)
	}
	if params.TenancyHandler != nil {
		r.Route("/assignments", params.TenancyHandler.MountRoutes)
	}
	if params.BillingHandler != nil {
		r.Route("/receipts", params.BillingHandler.MountRoutes)
	}
	if params.PaymentsHandler != nil {
		r.Route("/payments", params.PaymentsHandler.MountRoutes)
	}
	if params.TaxesHandler != nil {
		r.Route("/taxes", params.TaxesHandler.MountRoutes)
	}
	if params.ReportsHandler != nil {
		r.Route("/reports", params.ReportsHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
