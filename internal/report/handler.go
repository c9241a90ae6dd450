package report

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tcr-trading/backoffice/internal/inventory"
	"github.com/tcr-trading/backoffice/internal/payments"
	"github.com/tcr-trading/backoffice/internal/platform/httpx"
)

// CarPager serves filtered stock pages; the handler aggregates all of them
// before rendering.
type CarPager interface {
	Query(ctx context.Context, p inventory.Params) (inventory.Result, error)
	Get(ctx context.Context, id int64) (inventory.Car, error)
}

// PaymentGetter fetches one payment record with installments.
type PaymentGetter interface {
	Get(ctx context.Context, id int64) (payments.Record, error)
}

// Enqueuer hands a stock report off to the background worker.
type Enqueuer interface {
	EnqueueStockReport(ctx context.Context) (string, error)
}

// Handler wires the report download endpoints.
type Handler struct {
	logger   *slog.Logger
	cars     CarPager
	payments PaymentGetter
	stock    *StockListGenerator
	sales    *SalesReportGenerator
	enqueue  Enqueuer
}

// NewHandler constructs the report handler. enqueue may be nil when no
// worker is configured; the async endpoint then reports unavailable.
func NewHandler(logger *slog.Logger, cars CarPager, paymentSrc PaymentGetter, stock *StockListGenerator, sales *SalesReportGenerator, enqueue Enqueuer) *Handler {
	return &Handler{logger: logger, cars: cars, payments: paymentSrc, stock: stock, sales: sales, enqueue: enqueue}
}

// MountRoutes registers the report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/stock.pdf", h.stockPDF)
	r.Get("/reports/stock.xlsx", h.stockExcel)
	r.Post("/reports/stock", h.enqueueStock)
	r.Get("/payments/{id}/report.pdf", h.salesPDF)
}

// allCars aggregates every stock page: page 1 first for the page count,
// then the rest concurrently.
func (h *Handler) allCars(ctx context.Context, params inventory.Params) ([]inventory.Car, error) {
	return CollectAll(ctx, func(ctx context.Context, page int) ([]inventory.Car, int, error) {
		p := params
		p.Page = page
		result, err := h.cars.Query(ctx, p)
		if err != nil {
			return nil, 0, err
		}
		return result.Items, result.Pagination.TotalPages, nil
	})
}

func (h *Handler) stockPDF(w http.ResponseWriter, r *http.Request) {
	cars, err := h.allCars(r.Context(), inventory.ParamsFromQuery(r))
	if err != nil {
		h.logger.Error("collect stock pages", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	pdf, err := h.stock.Generate(cars)
	if err != nil {
		h.logger.Error("render stock list", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "could not generate report")
		return
	}
	httpx.Attachment(w, StockListFilename(time.Now()), "application/pdf", pdf)
}

func (h *Handler) stockExcel(w http.ResponseWriter, r *http.Request) {
	cars, err := h.allCars(r.Context(), inventory.ParamsFromQuery(r))
	if err != nil {
		h.logger.Error("collect stock pages", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	book, err := StockWorkbook(BuildStockRows(cars, h.stock.baseURL))
	if err != nil {
		h.logger.Error("render stock workbook", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "could not generate workbook")
		return
	}
	httpx.Attachment(w, StockWorkbookFilename(time.Now()),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", book)
}

func (h *Handler) enqueueStock(w http.ResponseWriter, r *http.Request) {
	if h.enqueue == nil {
		httpx.Fail(w, http.StatusServiceUnavailable, "background worker not configured")
		return
	}
	taskID, err := h.enqueue.EnqueueStockReport(r.Context())
	if err != nil {
		h.logger.Error("enqueue stock report", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "could not enqueue report")
		return
	}
	httpx.JSON(w, http.StatusAccepted, httpx.Envelope{Success: true, Message: "report queued", Data: map[string]string{"task_id": taskID}})
}

func (h *Handler) salesPDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	rec, err := h.payments.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	// A deleted linked car renders as N/A rather than failing the report.
	var car *inventory.Car
	if rec.CarID != nil {
		if c, err := h.cars.Get(r.Context(), *rec.CarID); err == nil {
			car = &c
		}
	}

	refNo := NewReferenceNumber(rec.ID, time.Now())
	pdf, err := h.sales.Generate(rec, car, refNo)
	if err != nil {
		h.logger.Error("render sales report", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "could not generate report")
		return
	}
	httpx.Attachment(w, SalesReportFilename(refNo), "application/pdf", pdf)
}
