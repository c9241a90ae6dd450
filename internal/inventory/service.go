package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tcr-trading/backoffice/internal/shared"
)

// Store is the persistence contract the service depends on.
type Store interface {
	List(ctx context.Context) ([]Car, error)
	Get(ctx context.Context, id int64) (Car, error)
	Create(ctx context.Context, c Car) (int64, error)
	Update(ctx context.Context, c Car) error
	Delete(ctx context.Context, id int64) error
	AddPhoto(ctx context.Context, p Photo) (int64, error)
}

// Service exposes inventory operations backed by the store and the snapshot
// cache.
type Service struct {
	store    Store
	cache    *Cache
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService constructs the inventory service.
func NewService(store Store, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, cache: cache, logger: logger, validate: validator.New()}
}

// List returns the full car snapshot, served from the versioned cache when
// warm.
func (s *Service) List(ctx context.Context) ([]Car, error) {
	key, err := s.cache.BuildKey(ctx, "inventory", "cars")
	if err != nil {
		s.logger.Warn("inventory cache key", slog.Any("error", err))
		return s.store.List(ctx)
	}
	var cars []Car
	if err := s.cache.FetchJSON(ctx, key, &cars, func(ctx context.Context) (interface{}, error) {
		return s.store.List(ctx)
	}); err != nil {
		s.logger.Warn("inventory cache fetch", slog.Any("error", err))
		return s.store.List(ctx)
	}
	return cars, nil
}

// Query runs the filter/sort/paginate engine over the full snapshot.
func (s *Service) Query(ctx context.Context, p Params) (Result, error) {
	cars, err := s.List(ctx)
	if err != nil {
		return Result{}, err
	}
	return Query(cars, p), nil
}

// FilterOptions derives the dropdown option sets from the unfiltered
// snapshot.
func (s *Service) FilterOptions(ctx context.Context) (FilterOptions, error) {
	cars, err := s.List(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	return Options(cars), nil
}

// Groups partitions the snapshot into product-line groups.
func (s *Service) Groups(ctx context.Context) ([]Group, error) {
	cars, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByProductLine(cars), nil
}

// Get fetches one car.
func (s *Service) Get(ctx context.Context, id int64) (Car, error) {
	return s.store.Get(ctx, id)
}

// Create receives a unit into inventory.
func (s *Service) Create(ctx context.Context, req CreateCarRequest) (Car, error) {
	if err := s.checkRequest(req); err != nil {
		return Car{}, err
	}
	id, err := s.store.Create(ctx, carFromRequest(req))
	if err != nil {
		return Car{}, err
	}
	s.invalidate(ctx)
	return s.store.Get(ctx, id)
}

// Update rewrites a car record.
func (s *Service) Update(ctx context.Context, id int64, req UpdateCarRequest) (Car, error) {
	if err := s.checkRequest(req); err != nil {
		return Car{}, err
	}
	c := carFromRequest(req)
	c.ID = id
	if err := s.store.Update(ctx, c); err != nil {
		return Car{}, err
	}
	s.invalidate(ctx)
	return s.store.Get(ctx, id)
}

// Delete removes a car and its photos.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// AttachPhoto stores a photo reference against a car.
func (s *Service) AttachPhoto(ctx context.Context, p Photo) (int64, error) {
	id, err := s.store.AddPhoto(ctx, p)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return id, nil
}

func (s *Service) checkRequest(req CreateCarRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	if !req.Status.Valid() {
		return fmt.Errorf("%w: %v", shared.ErrValidation, ErrInvalidStatus)
	}
	if req.Price != nil && req.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: price must be >= 0", shared.ErrValidation)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("inventory cache bump", slog.Any("error", err))
	}
}

func carFromRequest(req CreateCarRequest) Car {
	return Car{
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		Package:         req.Package,
		Color:           req.Color,
		Fuel:            req.Fuel,
		Mileage:         req.Mileage,
		EngineCC:        req.EngineCC,
		Grade:           req.Grade,
		Features:        req.Features,
		Price:           req.Price,
		Status:          req.Status,
		ChassisNo:       req.ChassisNo,
		ChassisNoMasked: req.ChassisNoMasked,
		ReferenceNo:     req.ReferenceNo,
	}
}
