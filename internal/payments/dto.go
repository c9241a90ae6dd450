package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordRequest carries the writable fields of a payment record.
type RecordRequest struct {
	CarID      *int64           `json:"car_id"`
	Wholesaler string           `json:"wholesaler" validate:"required"`
	Address    string           `json:"address"`
	SaleAmount *decimal.Decimal `json:"sale_amount"`
	SaleDate   *time.Time       `json:"sale_date"`
	NIDNumber  string           `json:"nid_number"`
	TIN        string           `json:"tin"`
	Contact    string           `json:"contact"`
	Email      string           `json:"email" validate:"omitempty,email"`
}

func recordFromRequest(req RecordRequest) Record {
	return Record{
		CarID:      req.CarID,
		Wholesaler: req.Wholesaler,
		Address:    req.Address,
		SaleAmount: req.SaleAmount,
		SaleDate:   req.SaleDate,
		NIDNumber:  req.NIDNumber,
		TIN:        req.TIN,
		Contact:    req.Contact,
		Email:      req.Email,
	}
}

// InstallmentRequest carries the writable fields of one installment.
type InstallmentRequest struct {
	Date        *time.Time       `json:"date"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Method      Method           `json:"method" validate:"required"`
	BankName    string           `json:"bank_name"`
	ChequeNo    string           `json:"cheque_no"`
	Remarks     string           `json:"remarks"`
}

func installmentFromRequest(recordID int64, req InstallmentRequest) Installment {
	return Installment{
		RecordID:    recordID,
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Method:      req.Method,
		BankName:    req.BankName,
		ChequeNo:    req.ChequeNo,
		Remarks:     req.Remarks,
	}
}
