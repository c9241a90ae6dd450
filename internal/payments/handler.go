package payments

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tcr-trading/backoffice/internal/platform/httpx"
)

// Handler wires the payment JSON endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the payments handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the payment routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/payments", h.list)
	r.Get("/payments/{id}", h.get)
	r.Post("/payments", h.create)
	r.Put("/payments/{id}", h.update)
	r.Delete("/payments/{id}", h.remove)

	r.Post("/payments/{id}/installments", h.addInstallment)
	r.Put("/payments/{id}/installments/{instID}", h.updateInstallment)
	r.Delete("/payments/{id}/installments/{instID}", h.removeInstallment)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list payments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "payment records", records)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "payment record", rec)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rec, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "payment record created", rec)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rec, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "payment record updated", rec)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "payment record deleted", nil)
}

func (h *Handler) addInstallment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	var req InstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rec, err := h.service.AddInstallment(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "installment added", rec)
}

func (h *Handler) updateInstallment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	instID, err := strconv.ParseInt(chi.URLParam(r, "instID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid installment id")
		return
	}
	var req InstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rec, err := h.service.UpdateInstallment(r.Context(), id, instID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "installment updated", rec)
}

func (h *Handler) removeInstallment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}
	instID, err := strconv.ParseInt(chi.URLParam(r, "instID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid installment id")
		return
	}
	rec, err := h.service.DeleteInstallment(r.Context(), id, instID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "installment deleted", rec)
}

func (h *Handler) recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid payment id")
		return 0, false
	}
	return id, true
}
