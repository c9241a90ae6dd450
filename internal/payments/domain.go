package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

// Method is how an installment was received.
type Method string

const (
	MethodBank Method = "Bank"
	MethodCash Method = "Cash"
)

// Valid reports whether m is one of the known payment methods.
func (m Method) Valid() bool {
	return m == MethodBank || m == MethodCash
}

// Installment is one received payment against a sale. It belongs to exactly
// one Record and goes away with it.
type Installment struct {
	ID          int64            `json:"id"`
	RecordID    int64            `json:"record_id"`
	Date        *time.Time       `json:"date"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Method      Method           `json:"method"`
	BankName    string           `json:"bank_name"`
	ChequeNo    string           `json:"cheque_no"`
	Balance     *decimal.Decimal `json:"balance"`
	Remarks     string           `json:"remarks"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Record is a sale to a wholesaler, optionally linked to a car in stock.
type Record struct {
	ID         int64            `json:"id"`
	CarID      *int64           `json:"car_id"`
	Wholesaler string           `json:"wholesaler"`
	Address    string           `json:"address"`
	SaleAmount *decimal.Decimal `json:"sale_amount"`
	SaleDate   *time.Time       `json:"sale_date"`

	// Customer KYC.
	NIDNumber string `json:"nid_number"`
	TIN       string `json:"tin"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`

	Installments []Installment `json:"installments,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// PaidTotal sums the installment amounts, treating absent amounts as zero.
func (r *Record) PaidTotal() decimal.Decimal {
	var total decimal.Decimal
	for _, inst := range r.Installments {
		if inst.Amount != nil {
			total = total.Add(*inst.Amount)
		}
	}
	return total
}

// RemainingBalance is the sale amount minus received installments, floored at
// zero when overpaid. A record with no sale amount has nothing outstanding.
func (r *Record) RemainingBalance() decimal.Decimal {
	if r.SaleAmount == nil {
		return decimal.Zero
	}
	remaining := r.SaleAmount.Sub(r.PaidTotal())
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// FillBalances rewrites each installment's running balance from the sale
// amount in list order, flooring at zero.
func (r *Record) FillBalances() {
	running := decimal.Zero
	if r.SaleAmount != nil {
		running = *r.SaleAmount
	}
	for i := range r.Installments {
		if r.Installments[i].Amount != nil {
			running = running.Sub(*r.Installments[i].Amount)
		}
		if running.IsNegative() {
			running = decimal.Zero
		}
		bal := running
		r.Installments[i].Balance = &bal
	}
}
