package inventory

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the lifecycle states of a unit in stock.
type Status string

const (
	// StatusAvailable marks a unit ready for sale.
	StatusAvailable Status = "available"
	// StatusSold marks a unit sold to a wholesaler.
	StatusSold Status = "sold"
	// StatusReserved marks a unit held for a pending sale.
	StatusReserved Status = "reserved"
	// StatusDamaged marks a unit written down after damage.
	StatusDamaged Status = "damaged"
	// StatusLost marks a unit unaccounted for.
	StatusLost Status = "lost"
	// StatusStolen marks a unit reported stolen.
	StatusStolen Status = "stolen"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusReserved, StatusDamaged, StatusLost, StatusStolen:
		return true
	}
	return false
}

// Photo is an image attached to a car. At most one photo per car carries the
// primary flag.
type Photo struct {
	ID        int64  `json:"id"`
	CarID     int64  `json:"car_id"`
	FileRef   string `json:"file_ref"`
	IsPrimary bool   `json:"is_primary"`
}

// Car represents one physical unit in stock. The query, grouping and report
// code only ever reads it.
type Car struct {
	ID              int64            `json:"id"`
	Make            string           `json:"make"`
	Model           string           `json:"model"`
	Year            int              `json:"year"`
	Package         string           `json:"package"`
	Color           string           `json:"color"`
	Fuel            string           `json:"fuel"`
	Mileage         int              `json:"mileage"`
	EngineCC        int              `json:"engine_cc"`
	Grade           string           `json:"grade"`
	Features        string           `json:"features"`
	Price           *decimal.Decimal `json:"price"`
	Status          Status           `json:"status"`
	ChassisNo       string           `json:"chassis_no"`
	ChassisNoMasked string           `json:"chassis_no_masked"`
	ReferenceNo     string           `json:"reference_no"`
	Photos          []Photo          `json:"photos,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// PrimaryPhoto returns the flagged photo, or the first one when none is
// flagged.
func (c *Car) PrimaryPhoto() *Photo {
	for i := range c.Photos {
		if c.Photos[i].IsPrimary {
			return &c.Photos[i]
		}
	}
	if len(c.Photos) > 0 {
		return &c.Photos[0]
	}
	return nil
}

// FeatureList splits the comma-separated feature field, dropping blanks.
func (c *Car) FeatureList() []string {
	parts := strings.Split(c.Features, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Chassis returns the full chassis number when known, otherwise the masked
// one.
func (c *Car) Chassis() string {
	if c.ChassisNo != "" {
		return c.ChassisNo
	}
	return c.ChassisNoMasked
}

// ErrInvalidStatus indicates an unknown status value on input.
var ErrInvalidStatus = errors.New("inventory: invalid status")
