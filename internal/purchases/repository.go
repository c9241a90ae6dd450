package purchases

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tcr-trading/backoffice/internal/shared"
)

// Repository provides PostgreSQL backed persistence for purchase records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const recordColumns = `id, car_id, currency, foreign_amount, bdt_rate, bdt_amount, customs_duty, other_costs,
	lc_number, lc_date, bank, branch, bank_address, units_per_lc,
	doc_lc_copy, doc_invoice, doc_bill_of_lading, doc_export_certificate, doc_cancellation_certificate,
	doc_auction_sheet, doc_inspection_certificate, doc_insurance, doc_bill_of_entry, doc_customs_clearance, doc_other,
	created_at, updated_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	var foreign, rate, amount, duty, other decimal.NullDecimal
	docs := make([]*string, len(DocumentKinds))
	dest := []any{
		&rec.ID, &rec.CarID, &rec.Currency, &foreign, &rate, &amount, &duty, &other,
		&rec.LCNumber, &rec.LCDate, &rec.Bank, &rec.Branch, &rec.BankAddress, &rec.UnitsPerLC,
	}
	for i := range docs {
		dest = append(dest, &docs[i])
	}
	dest = append(dest, &rec.CreatedAt, &rec.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return Record{}, err
	}

	rec.ForeignAmount = fromNull(foreign)
	rec.BDTRate = fromNull(rate)
	rec.BDTAmount = fromNull(amount)
	rec.CustomsDuty = fromNull(duty)
	rec.OtherCosts = fromNull(other)

	rec.Documents = map[DocumentKind]string{}
	for i, kind := range DocumentKinds {
		if docs[i] != nil && *docs[i] != "" {
			rec.Documents[kind] = *docs[i]
		}
	}
	return rec, nil
}

// List returns every purchase record.
func (r *Repository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recordColumns+` FROM purchase_records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get fetches one record.
func (r *Repository) Get(ctx context.Context, id int64) (Record, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM purchase_records WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, shared.ErrNotFound
	}
	return rec, err
}

// Create inserts a record and returns its id.
func (r *Repository) Create(ctx context.Context, rec Record) (int64, error) {
	args := []any{
		rec.CarID, rec.Currency, toNull(rec.ForeignAmount), toNull(rec.BDTRate), toNull(rec.BDTAmount),
		toNull(rec.CustomsDuty), toNull(rec.OtherCosts),
		rec.LCNumber, rec.LCDate, rec.Bank, rec.Branch, rec.BankAddress, rec.UnitsPerLC,
	}
	for _, kind := range DocumentKinds {
		args = append(args, docRef(rec, kind))
	}

	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO purchase_records (car_id, currency, foreign_amount, bdt_rate, bdt_amount, customs_duty, other_costs,
			lc_number, lc_date, bank, branch, bank_address, units_per_lc,
			doc_lc_copy, doc_invoice, doc_bill_of_lading, doc_export_certificate, doc_cancellation_certificate,
			doc_auction_sheet, doc_inspection_certificate, doc_insurance, doc_bill_of_entry, doc_customs_clearance, doc_other,
			created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,now(),now())
		 RETURNING id`, args...).Scan(&id)
	return id, err
}

// Update rewrites a record.
func (r *Repository) Update(ctx context.Context, rec Record) error {
	args := []any{
		rec.ID,
		rec.CarID, rec.Currency, toNull(rec.ForeignAmount), toNull(rec.BDTRate), toNull(rec.BDTAmount),
		toNull(rec.CustomsDuty), toNull(rec.OtherCosts),
		rec.LCNumber, rec.LCDate, rec.Bank, rec.Branch, rec.BankAddress, rec.UnitsPerLC,
	}
	for _, kind := range DocumentKinds {
		args = append(args, docRef(rec, kind))
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE purchase_records SET car_id=$2, currency=$3, foreign_amount=$4, bdt_rate=$5, bdt_amount=$6,
			customs_duty=$7, other_costs=$8, lc_number=$9, lc_date=$10, bank=$11, branch=$12, bank_address=$13, units_per_lc=$14,
			doc_lc_copy=$15, doc_invoice=$16, doc_bill_of_lading=$17, doc_export_certificate=$18, doc_cancellation_certificate=$19,
			doc_auction_sheet=$20, doc_inspection_certificate=$21, doc_insurance=$22, doc_bill_of_entry=$23, doc_customs_clearance=$24, doc_other=$25,
			updated_at=now()
		 WHERE id=$1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a record.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM purchase_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func docRef(rec Record, kind DocumentKind) *string {
	if ref, ok := rec.Documents[kind]; ok && ref != "" {
		return &ref
	}
	return nil
}

func fromNull(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}

func toNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
