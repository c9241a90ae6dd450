package payments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tcr-trading/backoffice/internal/shared"
)

// Repository provides PostgreSQL backed persistence for payment records and
// their installments. Installments cascade with the parent record.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const recordColumns = `id, car_id, wholesaler, address, sale_amount, sale_date,
	nid_number, tin, contact, email, created_at, updated_at`

const installmentColumns = `id, record_id, paid_at, description, amount, method,
	bank_name, cheque_no, balance, remarks, created_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	var amount decimal.NullDecimal
	err := row.Scan(&rec.ID, &rec.CarID, &rec.Wholesaler, &rec.Address, &amount, &rec.SaleDate,
		&rec.NIDNumber, &rec.TIN, &rec.Contact, &rec.Email, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return Record{}, err
	}
	rec.SaleAmount = fromNull(amount)
	return rec, nil
}

func scanInstallment(row pgx.Row) (Installment, error) {
	var inst Installment
	var amount, balance decimal.NullDecimal
	err := row.Scan(&inst.ID, &inst.RecordID, &inst.Date, &inst.Description, &amount, &inst.Method,
		&inst.BankName, &inst.ChequeNo, &balance, &inst.Remarks, &inst.CreatedAt)
	if err != nil {
		return Installment{}, err
	}
	inst.Amount = fromNull(amount)
	inst.Balance = fromNull(balance)
	return inst, nil
}

// List returns every payment record with its installments attached.
func (r *Repository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recordColumns+` FROM payment_records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	index := map[int64]int{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	irows, err := r.pool.Query(ctx, `SELECT `+installmentColumns+` FROM payment_installments ORDER BY record_id, id`)
	if err != nil {
		return nil, err
	}
	defer irows.Close()
	for irows.Next() {
		inst, err := scanInstallment(irows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[inst.RecordID]; ok {
			records[i].Installments = append(records[i].Installments, inst)
		}
	}
	return records, irows.Err()
}

// Get fetches one record with its installments.
func (r *Repository) Get(ctx context.Context, id int64) (Record, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM payment_records WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, shared.ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+installmentColumns+` FROM payment_installments WHERE record_id = $1 ORDER BY id`, id)
	if err != nil {
		return Record{}, err
	}
	defer rows.Close()
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return Record{}, err
		}
		rec.Installments = append(rec.Installments, inst)
	}
	return rec, rows.Err()
}

// Create inserts a record and returns its id.
func (r *Repository) Create(ctx context.Context, rec Record) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO payment_records (car_id, wholesaler, address, sale_amount, sale_date,
			nid_number, tin, contact, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING id`,
		rec.CarID, rec.Wholesaler, rec.Address, toNull(rec.SaleAmount), rec.SaleDate,
		rec.NIDNumber, rec.TIN, rec.Contact, rec.Email,
	).Scan(&id)
	return id, err
}

// Update rewrites a record's own fields. Installments are managed separately.
func (r *Repository) Update(ctx context.Context, rec Record) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payment_records SET car_id = $2, wholesaler = $3, address = $4, sale_amount = $5,
			sale_date = $6, nid_number = $7, tin = $8, contact = $9, email = $10, updated_at = now()
		WHERE id = $1`,
		rec.ID, rec.CarID, rec.Wholesaler, rec.Address, toNull(rec.SaleAmount), rec.SaleDate,
		rec.NIDNumber, rec.TIN, rec.Contact, rec.Email,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a record; the installments foreign key cascades.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddInstallment inserts one installment under a record.
func (r *Repository) AddInstallment(ctx context.Context, inst Installment) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO payment_installments (record_id, paid_at, description, amount, method,
			bank_name, cheque_no, balance, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		RETURNING id`,
		inst.RecordID, inst.Date, inst.Description, toNull(inst.Amount), inst.Method,
		inst.BankName, inst.ChequeNo, toNull(inst.Balance), inst.Remarks,
	).Scan(&id)
	return id, err
}

// UpdateInstallment rewrites one installment.
func (r *Repository) UpdateInstallment(ctx context.Context, inst Installment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payment_installments SET paid_at = $2, description = $3, amount = $4, method = $5,
			bank_name = $6, cheque_no = $7, balance = $8, remarks = $9
		WHERE id = $1`,
		inst.ID, inst.Date, inst.Description, toNull(inst.Amount), inst.Method,
		inst.BankName, inst.ChequeNo, toNull(inst.Balance), inst.Remarks,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteInstallment removes one installment under a record.
func (r *Repository) DeleteInstallment(ctx context.Context, recordID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_installments WHERE id = $1 AND record_id = $2`, id, recordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func fromNull(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func toNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
