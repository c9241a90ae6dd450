package purchases

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecordRequest carries create/update input. Optional fields stay nil when
// absent so the serialization omits or nulls them consistently instead of
// coercing to zero.
type RecordRequest struct {
	CarID *int64 `json:"car_id,omitempty"`

	Currency      string           `json:"currency" validate:"omitempty,len=3"`
	ForeignAmount *decimal.Decimal `json:"foreign_amount,omitempty"`
	BDTRate       *decimal.Decimal `json:"bdt_rate,omitempty"`
	BDTAmount     *decimal.Decimal `json:"bdt_amount,omitempty"`
	CustomsDuty   *decimal.Decimal `json:"customs_duty,omitempty"`
	OtherCosts    *decimal.Decimal `json:"other_costs,omitempty"`

	LCNumber    string     `json:"lc_number" validate:"max=100"`
	LCDate      *time.Time `json:"lc_date,omitempty"`
	Bank        string     `json:"bank" validate:"max=200"`
	Branch      string     `json:"branch" validate:"max=200"`
	BankAddress string     `json:"bank_address" validate:"max=500"`
	UnitsPerLC  int        `json:"units_per_lc" validate:"gte=0"`
}

// RequestFromForm reads the text fields of a multipart form into a
// RecordRequest. Blank fields stay nil.
func RequestFromForm(r *http.Request) RecordRequest {
	req := RecordRequest{
		Currency:    strings.ToUpper(strings.TrimSpace(r.FormValue("currency"))),
		LCNumber:    r.FormValue("lc_number"),
		Bank:        r.FormValue("bank"),
		Branch:      r.FormValue("branch"),
		BankAddress: r.FormValue("bank_address"),
	}
	if v := r.FormValue("car_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.CarID = &id
		}
	}
	if v := r.FormValue("units_per_lc"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.UnitsPerLC = n
		}
	}
	if v := r.FormValue("lc_date"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			req.LCDate = &d
		}
	}
	req.ForeignAmount = formDecimal(r, "foreign_amount")
	req.BDTRate = formDecimal(r, "bdt_rate")
	req.BDTAmount = formDecimal(r, "bdt_amount")
	req.CustomsDuty = formDecimal(r, "customs_duty")
	req.OtherCosts = formDecimal(r, "other_costs")
	return req
}

func formDecimal(r *http.Request, field string) *decimal.Decimal {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}
