package stock

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tcr-trading/backoffice/internal/inventory"
	"github.com/tcr-trading/backoffice/internal/platform/httpx"
)

// Handler wires the stock JSON endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the stock handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the stock routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stocks", h.list)
	r.Get("/stocks/{id}", h.get)
	r.Post("/stocks", h.create)
	r.Put("/stocks/{id}", h.update)
	r.Delete("/stocks/{id}", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListRows(r.Context(), inventory.ParamsFromQuery(r))
	if err != nil {
		h.logger.Error("list stocks", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Page{
		Data:        result.Items,
		CurrentPage: result.Pagination.Page,
		LastPage:    result.Pagination.TotalPages,
		PerPage:     result.Pagination.PerPage,
		Total:       result.Pagination.Total,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid stock id")
		return
	}
	row, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "stock entry", row)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ids, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create stock", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "stock created", map[string]any{"ids": ids})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid stock id")
		return
	}
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	affected, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update stock", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "stock updated", map[string]any{"affected": affected})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid stock id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "stock deleted", nil)
}
