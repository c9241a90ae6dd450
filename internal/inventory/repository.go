package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tcr-trading/backoffice/internal/platform/db"
	"github.com/tcr-trading/backoffice/internal/shared"
)

// Repository provides PostgreSQL backed persistence for cars and photos.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const carColumns = `id, make, model, year, package, color, fuel, mileage, engine_cc, grade, features, price, status, chassis_no, chassis_no_masked, reference_no, created_at, updated_at`

func scanCar(row pgx.Row) (Car, error) {
	var c Car
	var price decimal.NullDecimal
	err := row.Scan(&c.ID, &c.Make, &c.Model, &c.Year, &c.Package, &c.Color, &c.Fuel,
		&c.Mileage, &c.EngineCC, &c.Grade, &c.Features, &price, &c.Status,
		&c.ChassisNo, &c.ChassisNoMasked, &c.ReferenceNo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Car{}, err
	}
	if price.Valid {
		c.Price = &price.Decimal
	}
	return c, nil
}

// List returns the full collection with photos attached. The query engine
// operates on this snapshot in memory.
func (r *Repository) List(ctx context.Context) ([]Car, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+carColumns+` FROM cars ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []Car
	index := map[int64]int{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		index[c.ID] = len(cars)
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	photoRows, err := r.pool.Query(ctx, `SELECT id, car_id, file_ref, is_primary FROM car_photos ORDER BY car_id, id`)
	if err != nil {
		return nil, err
	}
	defer photoRows.Close()
	for photoRows.Next() {
		var p Photo
		if err := photoRows.Scan(&p.ID, &p.CarID, &p.FileRef, &p.IsPrimary); err != nil {
			return nil, err
		}
		if at, ok := index[p.CarID]; ok {
			cars[at].Photos = append(cars[at].Photos, p)
		}
	}
	if err := photoRows.Err(); err != nil {
		return nil, err
	}
	return cars, nil
}

// Get fetches one car by id.
func (r *Repository) Get(ctx context.Context, id int64) (Car, error) {
	c, err := scanCar(r.pool.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Car{}, shared.ErrNotFound
	}
	if err != nil {
		return Car{}, err
	}

	rows, err := r.pool.Query(ctx, `SELECT id, car_id, file_ref, is_primary FROM car_photos WHERE car_id = $1 ORDER BY id`, id)
	if err != nil {
		return Car{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.CarID, &p.FileRef, &p.IsPrimary); err != nil {
			return Car{}, err
		}
		c.Photos = append(c.Photos, p)
	}
	return c, rows.Err()
}

// Create inserts a car and returns its id.
func (r *Repository) Create(ctx context.Context, c Car) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO cars (make, model, year, package, color, fuel, mileage, engine_cc, grade, features, price, status, chassis_no, chassis_no_masked, reference_no, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now(),now())
		 RETURNING id`,
		c.Make, c.Model, c.Year, c.Package, c.Color, c.Fuel, c.Mileage, c.EngineCC,
		c.Grade, c.Features, nullDecimal(c.Price), c.Status, c.ChassisNo, c.ChassisNoMasked, c.ReferenceNo).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, shared.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

// Update rewrites the mutable fields of a car.
func (r *Repository) Update(ctx context.Context, c Car) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cars SET make=$2, model=$3, year=$4, package=$5, color=$6, fuel=$7, mileage=$8, engine_cc=$9, grade=$10, features=$11, price=$12, status=$13, chassis_no=$14, chassis_no_masked=$15, reference_no=$16, updated_at=now()
		 WHERE id=$1`,
		c.ID, c.Make, c.Model, c.Year, c.Package, c.Color, c.Fuel, c.Mileage, c.EngineCC,
		c.Grade, c.Features, nullDecimal(c.Price), c.Status, c.ChassisNo, c.ChassisNoMasked, c.ReferenceNo)
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a car; photos cascade at the schema level.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddPhoto attaches a photo; flagging it primary clears the flag on its
// siblings in the same transaction.
func (r *Repository) AddPhoto(ctx context.Context, p Photo) (int64, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if p.IsPrimary {
			if _, err := tx.Exec(ctx, `UPDATE car_photos SET is_primary = false WHERE car_id = $1`, p.CarID); err != nil {
				return err
			}
		}
		return tx.QueryRow(ctx,
			`INSERT INTO car_photos (car_id, file_ref, is_primary) VALUES ($1,$2,$3) RETURNING id`,
			p.CarID, p.FileRef, p.IsPrimary).Scan(&id)
	})
	return id, err
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
