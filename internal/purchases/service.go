package purchases

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
}

// FileRemover deletes stored attachments when their owning record goes away.
type FileRemover interface {
	Remove(ref string) error
}

// Service exposes purchase-record operations.
type Service struct {
	store    Store
	uploads  FileRemover
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService constructs the purchases service.
func NewService(store Store, uploads FileRemover, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, uploads: uploads, logger: logger, validate: validator.New()}
}

// List returns every purchase record.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.store.List(ctx)
}

// Get fetches one record.
func (s *Service) Get(ctx context.Context, id int64) (Record, error) {
	return s.store.Get(ctx, id)
}

// Create inserts a record; docs maps document slots to already-stored file
// refs.
func (s *Service) Create(ctx context.Context, req RecordRequest, docs map[DocumentKind]string) (Record, error) {
	if err := s.validate.Struct(req); err != nil {
		return Record{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	rec := recordFromRequest(req)
	rec.Documents = docs
	ApplyConversion(&rec)

	id, err := s.store.Create(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	return s.store.Get(ctx, id)
}

// Update rewrites a record. Document slots present in docs replace the stored
// refs; slots absent from docs keep their current value.
func (s *Service) Update(ctx context.Context, id int64, req RecordRequest, docs map[DocumentKind]string) (Record, error) {
	if err := s.validate.Struct(req); err != nil {
		return Record{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}

	rec := recordFromRequest(req)
	rec.ID = id
	rec.Documents = current.Documents
	if rec.Documents == nil {
		rec.Documents = map[DocumentKind]string{}
	}
	for kind, ref := range docs {
		if old, ok := rec.Documents[kind]; ok && old != ref {
			s.removeFile(old)
		}
		rec.Documents[kind] = ref
	}
	ApplyConversion(&rec)

	if err := s.store.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return s.store.Get(ctx, id)
}

// Delete removes a record along with its stored documents.
func (s *Service) Delete(ctx context.Context, id int64) error {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	for _, ref := range rec.Documents {
		s.removeFile(ref)
	}
	return nil
}

// ApplyConversion fills the BDT purchase amount as foreign-amount times
// BDT-per-unit when both are supplied and the caller left it blank.
func ApplyConversion(rec *Record) {
	if rec.BDTAmount != nil || rec.ForeignAmount == nil || rec.BDTRate == nil {
		return
	}
	amount := rec.ForeignAmount.Mul(*rec.BDTRate)
	rec.BDTAmount = &amount
}

func (s *Service) removeFile(ref string) {
	if s.uploads == nil || ref == "" {
		return
	}
	if err := s.uploads.Remove(ref); err != nil {
		s.logger.Warn("remove purchase document", slog.String("ref", ref), slog.Any("error", err))
	}
}

func recordFromRequest(req RecordRequest) Record {
	return Record{
		CarID:         req.CarID,
		Currency:      req.Currency,
		ForeignAmount: req.ForeignAmount,
		BDTRate:       req.BDTRate,
		BDTAmount:     req.BDTAmount,
		CustomsDuty:   req.CustomsDuty,
		OtherCosts:    req.OtherCosts,
		LCNumber:      req.LCNumber,
		LCDate:        req.LCDate,
		Bank:          req.Bank,
		Branch:        req.Branch,
		BankAddress:   req.BankAddress,
		UnitsPerLC:    req.UnitsPerLC,
	}
}
