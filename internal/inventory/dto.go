package inventory

import (
	"github.com/shopspring/decimal"
)

// CreateCarRequest carries the fields accepted when receiving a unit into
// inventory.
type CreateCarRequest struct {
	Make            string           `json:"make" validate:"required,max=100"`
	Model           string           `json:"model" validate:"required,max=100"`
	Year            int              `json:"year" validate:"required,gte=1950,lte=2100"`
	Package         string           `json:"package" validate:"max=100"`
	Color           string           `json:"color" validate:"max=50"`
	Fuel            string           `json:"fuel" validate:"max=50"`
	Mileage         int              `json:"mileage" validate:"gte=0"`
	EngineCC        int              `json:"engine_cc" validate:"gte=0"`
	Grade           string           `json:"grade" validate:"max=20"`
	Features        string           `json:"features"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Status          Status           `json:"status" validate:"required"`
	ChassisNo       string           `json:"chassis_no" validate:"max=50"`
	ChassisNoMasked string           `json:"chassis_no_masked" validate:"max=50"`
	ReferenceNo     string           `json:"reference_no" validate:"max=50"`
}

// UpdateCarRequest mirrors CreateCarRequest; absent optional fields null out
// their columns, matching the explicit optional-field serialization the
// forms use.
type UpdateCarRequest = CreateCarRequest
