package stock

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tcr-trading/backoffice/internal/inventory"
	"github.com/tcr-trading/backoffice/internal/shared"
)

// Store is the persistence contract the service depends on.
type Store interface {
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id int64) (Entry, error)
	Create(ctx context.Context, e Entry) (int64, error)
	Update(ctx context.Context, e Entry) error
	UpdateByCarIDs(ctx context.Context, carIDs []int64, e Entry) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// CarLister exposes the slice of the inventory service the stock module
// needs.
type CarLister interface {
	List(ctx context.Context) ([]inventory.Car, error)
	Get(ctx context.Context, id int64) (inventory.Car, error)
}

// EntryRequest carries create/update input. Quantity must be positive and
// price, when present, non-negative; both are checked before any write.
type EntryRequest struct {
	CarID       int64            `json:"car_id" validate:"required,gt=0"`
	Quantity    int              `json:"quantity" validate:"required,gt=0"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Status      inventory.Status `json:"status" validate:"required"`
	Notes       string           `json:"notes"`
	ApplyToLine bool             `json:"apply_to_line"`
}

// Service wires stock entries to the inventory grouping engine.
type Service struct {
	store    Store
	cars     CarLister
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService constructs the stock service.
func NewService(store Store, cars CarLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, cars: cars, logger: logger, validate: validator.New()}
}

// ListRows joins every entry to its car and runs the shared query engine.
func (s *Service) ListRows(ctx context.Context, p inventory.Params) (Result, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return Result{}, err
	}
	cars, err := s.cars.List(ctx)
	if err != nil {
		return Result{}, err
	}
	byID := make(map[int64]*inventory.Car, len(cars))
	for i := range cars {
		byID[cars[i].ID] = &cars[i]
	}
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{Entry: e, Car: byID[e.CarID]})
	}
	return QueryRows(rows, p), nil
}

// Get fetches one entry with its car attached.
func (s *Service) Get(ctx context.Context, id int64) (Row, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return Row{}, err
	}
	row := Row{Entry: e}
	if car, err := s.cars.Get(ctx, e.CarID); err == nil {
		row.Car = &car
	}
	return row, nil
}

// Create records a stock entry. With ApplyToLine set the entry is applied
// uniformly across every member of the car's product line.
func (s *Service) Create(ctx context.Context, req EntryRequest) ([]int64, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	carIDs := []int64{req.CarID}
	if req.ApplyToLine {
		ids, err := s.lineMembers(ctx, req.CarID)
		if err != nil {
			return nil, err
		}
		carIDs = ids
	}

	created := make([]int64, 0, len(carIDs))
	for _, carID := range carIDs {
		id, err := s.store.Create(ctx, entryFromRequest(req, carID))
		if err != nil {
			return created, err
		}
		created = append(created, id)
	}
	return created, nil
}

// Update rewrites one entry, fanning the change out across the product line
// when requested. Editing stock for one unit of a line is treated as editing
// the line's stock levels.
func (s *Service) Update(ctx context.Context, id int64, req EntryRequest) (int64, error) {
	if err := s.checkRequest(req); err != nil {
		return 0, err
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	if !req.ApplyToLine {
		e := entryFromRequest(req, current.CarID)
		e.ID = id
		if err := s.store.Update(ctx, e); err != nil {
			return 0, err
		}
		return 1, nil
	}

	memberIDs, err := s.lineMembers(ctx, current.CarID)
	if err != nil {
		return 0, err
	}
	affected, err := s.store.UpdateByCarIDs(ctx, memberIDs, entryFromRequest(req, current.CarID))
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		// Group resolution raced a data change; fall back to the single
		// record rather than silently doing nothing.
		e := entryFromRequest(req, current.CarID)
		e.ID = id
		if err := s.store.Update(ctx, e); err != nil {
			return 0, err
		}
		return 1, nil
	}
	s.logger.Info("stock fan-out update",
		slog.Int64("entry_id", id),
		slog.Int("members", len(memberIDs)),
		slog.Int64("affected", affected))
	return affected, nil
}

// Delete removes one entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// lineMembers resolves the product-line member ids for a car. When the car's
// group cannot be found the car itself is the only member.
func (s *Service) lineMembers(ctx context.Context, carID int64) ([]int64, error) {
	car, err := s.cars.Get(ctx, carID)
	if err != nil {
		return nil, err
	}
	cars, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}
	group := inventory.ResolveGroup(inventory.GroupByProductLine(cars), car)
	return group.MemberIDs, nil
}

func (s *Service) checkRequest(req EntryRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	if !req.Status.Valid() {
		return fmt.Errorf("%w: %v", shared.ErrValidation, inventory.ErrInvalidStatus)
	}
	if req.Price != nil && req.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: price must be >= 0", shared.ErrValidation)
	}
	return nil
}

func entryFromRequest(req EntryRequest, carID int64) Entry {
	return Entry{
		CarID:    carID,
		Quantity: req.Quantity,
		Price:    req.Price,
		Status:   req.Status,
		Notes:    req.Notes,
	}
}
