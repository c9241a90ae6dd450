package payments

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/tcr-trading/backoffice/internal/shared"
)

// Store is the persistence contract the service depends on.
type Store interface {
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id int64) (Record, error)
	Create(ctx context.Context, rec Record) (int64, error)
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id int64) error
	AddInstallment(ctx context.Context, inst Installment) (int64, error)
	UpdateInstallment(ctx context.Context, inst Installment) error
	DeleteInstallment(ctx context.Context, recordID, id int64) error
}

// Service exposes payment-record and installment operations.
type Service struct {
	store    Store
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService constructs the payments service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, validate: validator.New()}
}

// List returns every payment record with balances filled in.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].FillBalances()
	}
	return records, nil
}

// Get fetches one record with balances filled in.
func (s *Service) Get(ctx context.Context, id int64) (Record, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	rec.FillBalances()
	return rec, nil
}

// Create inserts a record.
func (s *Service) Create(ctx context.Context, req RecordRequest) (Record, error) {
	if err := s.validate.Struct(req); err != nil {
		return Record{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	id, err := s.store.Create(ctx, recordFromRequest(req))
	if err != nil {
		return Record{}, err
	}
	return s.Get(ctx, id)
}

// Update rewrites a record's own fields.
func (s *Service) Update(ctx context.Context, id int64, req RecordRequest) (Record, error) {
	if err := s.validate.Struct(req); err != nil {
		return Record{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	rec := recordFromRequest(req)
	rec.ID = id
	if err := s.store.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a record and its installments.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// AddInstallment records one received payment and returns the parent with
// recomputed balances.
func (s *Service) AddInstallment(ctx context.Context, recordID int64, req InstallmentRequest) (Record, error) {
	if err := s.checkInstallment(req); err != nil {
		return Record{}, err
	}
	if _, err := s.store.Get(ctx, recordID); err != nil {
		return Record{}, err
	}
	if _, err := s.store.AddInstallment(ctx, installmentFromRequest(recordID, req)); err != nil {
		return Record{}, err
	}
	return s.persistBalances(ctx, recordID)
}

// UpdateInstallment rewrites one installment and recomputes balances.
func (s *Service) UpdateInstallment(ctx context.Context, recordID, id int64, req InstallmentRequest) (Record, error) {
	if err := s.checkInstallment(req); err != nil {
		return Record{}, err
	}
	inst := installmentFromRequest(recordID, req)
	inst.ID = id
	if err := s.store.UpdateInstallment(ctx, inst); err != nil {
		return Record{}, err
	}
	return s.persistBalances(ctx, recordID)
}

// DeleteInstallment removes one installment and recomputes balances.
func (s *Service) DeleteInstallment(ctx context.Context, recordID, id int64) (Record, error) {
	if err := s.store.DeleteInstallment(ctx, recordID, id); err != nil {
		return Record{}, err
	}
	return s.persistBalances(ctx, recordID)
}

func (s *Service) checkInstallment(req InstallmentRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	if !req.Method.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", shared.ErrValidation, req.Method)
	}
	if req.Amount != nil && req.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", shared.ErrValidation)
	}
	return nil
}

// persistBalances recomputes running balances in list order and writes them
// back so stored rows stay consistent with what reports print.
func (s *Service) persistBalances(ctx context.Context, recordID int64) (Record, error) {
	rec, err := s.store.Get(ctx, recordID)
	if err != nil {
		return Record{}, err
	}
	rec.FillBalances()
	for _, inst := range rec.Installments {
		if err := s.store.UpdateInstallment(ctx, inst); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}
