package purchases

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tcr-trading/backoffice/internal/files"
	"github.com/tcr-trading/backoffice/internal/platform/httpx"
)

const uploadSubdir = "purchases"

// Handler wires the purchase JSON/multipart endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	uploads *files.Store
}

// NewHandler constructs the purchases handler.
func NewHandler(logger *slog.Logger, service *Service, uploads *files.Store) *Handler {
	return &Handler{logger: logger, service: service, uploads: uploads}
}

// MountRoutes registers the purchase routes. File-bearing updates arrive as
// POST with a method override, which the app middleware rewrites to PUT
// before routing.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/purchases", h.list)
	r.Get("/purchases/{id}", h.get)
	r.Post("/purchases", h.create)
	r.Put("/purchases/{id}", h.update)
	r.Delete("/purchases/{id}", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list purchases", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "purchase records", records)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "purchase record", rec)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, docs, ok := h.decode(w, r)
	if !ok {
		return
	}
	rec, err := h.service.Create(r.Context(), req, docs)
	if err != nil {
		h.logger.Error("create purchase", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "purchase created", rec)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	req, docs, ok := h.decode(w, r)
	if !ok {
		return
	}
	rec, err := h.service.Update(r.Context(), id, req, docs)
	if err != nil {
		h.logger.Error("update purchase", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "purchase updated", rec)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "purchase deleted", nil)
}

// decode accepts either a JSON body (text-only requests) or a multipart form
// carrying document files alongside the text fields.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (RecordRequest, map[DocumentKind]string, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(files.MaxUploadSize); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid multipart form")
			return RecordRequest{}, nil, false
		}
		req := RequestFromForm(r)
		docs := map[DocumentKind]string{}
		for _, kind := range DocumentKinds {
			headers := r.MultipartForm.File[string(kind)]
			if len(headers) == 0 {
				continue
			}
			ref, err := h.uploads.Save(headers[0], uploadSubdir)
			if err != nil {
				h.logger.Error("store purchase document", slog.String("kind", string(kind)), slog.Any("error", err))
				httpx.Fail(w, http.StatusBadRequest, "could not store document "+string(kind))
				return RecordRequest{}, nil, false
			}
			docs[kind] = ref
		}
		return req, docs, true
	}

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return RecordRequest{}, nil, false
	}
	return req, nil, true
}
