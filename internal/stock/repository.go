package stock

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tcr-trading/backoffice/internal/shared"
)

// Repository provides PostgreSQL backed persistence for stock entries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const entryColumns = `id, car_id, quantity, price, status, notes, created_at, updated_at`

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	var price decimal.NullDecimal
	err := row.Scan(&e.ID, &e.CarID, &e.Quantity, &price, &e.Status, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return Entry{}, err
	}
	if price.Valid {
		e.Price = &price.Decimal
	}
	return e, nil
}

// List returns every stock entry.
func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+entryColumns+` FROM stock_entries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get fetches one entry.
func (r *Repository) Get(ctx context.Context, id int64) (Entry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM stock_entries WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, shared.ErrNotFound
	}
	return e, err
}

// Create inserts one entry.
func (r *Repository) Create(ctx context.Context, e Entry) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO stock_entries (car_id, quantity, price, status, notes, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,now(),now()) RETURNING id`,
		e.CarID, e.Quantity, nullDecimal(e.Price), e.Status, e.Notes).Scan(&id)
	return id, err
}

// Update rewrites one entry.
func (r *Repository) Update(ctx context.Context, e Entry) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE stock_entries SET quantity=$2, price=$3, status=$4, notes=$5, updated_at=now() WHERE id=$1`,
		e.ID, e.Quantity, nullDecimal(e.Price), e.Status, e.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateByCarIDs applies the same quantity/price/status/notes to every entry
// attached to the given cars. Used by the product-line fan-out.
func (r *Repository) UpdateByCarIDs(ctx context.Context, carIDs []int64, e Entry) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE stock_entries SET quantity=$2, price=$3, status=$4, notes=$5, updated_at=now() WHERE car_id = ANY($1)`,
		carIDs, e.Quantity, nullDecimal(e.Price), e.Status, e.Notes)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes one entry.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stock_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
