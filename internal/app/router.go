package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tcr-trading/backoffice/internal/inventory"
	"github.com/tcr-trading/backoffice/internal/payments"
	"github.com/tcr-trading/backoffice/internal/purchases"
	"github.com/tcr-trading/backoffice/internal/report"
	"github.com/tcr-trading/backoffice/internal/stock"
	"github.com/tcr-trading/backoffice/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	InventoryHandler *inventory.Handler
	StockHandler     *stock.Handler
	PurchasesHandler *purchases.Handler
	PaymentsHandler  *payments.Handler
	ReportHandler    *report.Handler
	JobsHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		params.InventoryHandler.MountRoutes(api)
		params.StockHandler.MountRoutes(api)
		params.PurchasesHandler.MountRoutes(api)
		params.PaymentsHandler.MountRoutes(api)
		params.ReportHandler.MountRoutes(api)
		if params.JobsHandler != nil {
			api.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	return r
}
