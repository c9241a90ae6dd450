package stock

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tcr-trading/backoffice/internal/inventory"
)

// Entry is a quantity/price/status record tied to exactly one car.
type Entry struct {
	ID        int64            `json:"id"`
	CarID     int64            `json:"car_id"`
	Quantity  int              `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
	Status    inventory.Status `json:"status"`
	Notes     string           `json:"notes"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Row pairs an entry with its linked car for listing. The car is nil when it
// has been deleted out from under the entry; such rows render "N/A" fields
// and fail every car-dependent filter.
type Row struct {
	Entry
	Car *inventory.Car `json:"car"`
}
