package inventory

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tcr-trading/backoffice/internal/files"
	"github.com/tcr-trading/backoffice/internal/platform/httpx"
)

const photoSubdir = "cars"

// Handler wires the inventory JSON endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	uploads *files.Store
}

// NewHandler constructs the inventory handler.
func NewHandler(logger *slog.Logger, service *Service, uploads *files.Store) *Handler {
	return &Handler{logger: logger, service: service, uploads: uploads}
}

// MountRoutes registers the inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/cars", h.list)
	r.Get("/cars/filter-options", h.filterOptions)
	r.Get("/cars/groups", h.groups)
	r.Get("/cars/{id}", h.get)
	r.Post("/cars", h.create)
	r.Put("/cars/{id}", h.update)
	r.Delete("/cars/{id}", h.remove)
	r.Post("/cars/{id}/photos", h.addPhoto)
}

// ParamsFromQuery translates list query parameters, clamping instead of
// rejecting malformed numbers.
func ParamsFromQuery(r *http.Request) Params {
	q := r.URL.Query()
	p := Params{
		Search:    q.Get("search"),
		Make:      q.Get("make"),
		Model:     q.Get("model"),
		Color:     q.Get("color"),
		Fuel:      q.Get("fuel"),
		SortField: q.Get("sort"),
		SortDesc:  q.Get("direction") == "desc",
		PageSize:  DefaultPageSize,
	}
	if year, err := strconv.Atoi(q.Get("year")); err == nil {
		p.Year = year
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = page
	}
	if size, err := strconv.Atoi(q.Get("per_page")); err == nil && size > 0 {
		p.PageSize = size
	}
	return p
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Query(r.Context(), ParamsFromQuery(r))
	if err != nil {
		h.logger.Error("list cars", slog.Any("error", err))
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

func (h *Handler) filterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.logger.Error("filter options", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "filter options", opts)
}

type groupView struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	MemberIDs []int64 `json:"member_ids"`
	CarID     int64   `json:"car_id"`
}

func (h *Handler) groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.Groups(r.Context())
	if err != nil {
		h.logger.Error("car groups", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	views := make([]groupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, groupView{
			Key:       g.Key,
			Label:     g.Label(),
			MemberIDs: g.MemberIDs,
			CarID:     g.Representative.ID,
		})
	}
	httpx.OK(w, "car groups", views)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid car id")
		return
	}
	car, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "car", car)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	car, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create car", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "car created", car)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid car id")
		return
	}
	var req UpdateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	car, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update car", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "car updated", car)
}

func (h *Handler) addPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid car id")
		return
	}
	if _, err := h.service.Get(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := r.ParseMultipartForm(files.MaxUploadSize); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	headers := r.MultipartForm.File["photo"]
	if len(headers) == 0 {
		httpx.Fail(w, http.StatusBadRequest, "photo file is required")
		return
	}
	ref, err := h.uploads.Save(headers[0], photoSubdir)
	if err != nil {
		h.logger.Error("save car photo", slog.Any("error", err), slog.Int64("car_id", id))
		httpx.Fail(w, http.StatusBadRequest, "could not store photo")
		return
	}
	photo := Photo{
		CarID:     id,
		FileRef:   ref,
		IsPrimary: r.FormValue("is_primary") == "true",
	}
	photoID, err := h.service.AttachPhoto(r.Context(), photo)
	if err != nil {
		_ = h.uploads.Remove(ref)
		h.logger.Error("attach car photo", slog.Any("error", err), slog.Int64("car_id", id))
		httpx.RespondError(w, err)
		return
	}
	photo.ID = photoID
	httpx.Created(w, "photo attached", photo)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid car id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete car", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, "car deleted", nil)
}
