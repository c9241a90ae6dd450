package purchases

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind names one of the customs/LC document slots a purchase record
// can carry. Each slot is independently nullable.
type DocumentKind string

const (
	DocLCCopy                  DocumentKind = "lc_copy"
	DocInvoice                 DocumentKind = "invoice"
	DocBillOfLading            DocumentKind = "bill_of_lading"
	DocExportCertificate       DocumentKind = "export_certificate"
	DocCancellationCertificate DocumentKind = "cancellation_certificate"
	DocAuctionSheet            DocumentKind = "auction_sheet"
	DocInspectionCertificate   DocumentKind = "inspection_certificate"
	DocInsurance               DocumentKind = "insurance"
	DocBillOfEntry             DocumentKind = "bill_of_entry"
	DocCustomsClearance        DocumentKind = "customs_clearance"
	DocOther                   DocumentKind = "other"
)

// DocumentKinds lists every slot in column order.
var DocumentKinds = []DocumentKind{
	DocLCCopy,
	DocInvoice,
	DocBillOfLading,
	DocExportCertificate,
	DocCancellationCertificate,
	DocAuctionSheet,
	DocInspectionCertificate,
	DocInsurance,
	DocBillOfEntry,
	DocCustomsClearance,
	DocOther,
}

// Record is an import/acquisition record, optionally linked to one car.
type Record struct {
	ID    int64  `json:"id"`
	CarID *int64 `json:"car_id"`

	Currency      string           `json:"currency"`
	ForeignAmount *decimal.Decimal `json:"foreign_amount"`
	BDTRate       *decimal.Decimal `json:"bdt_rate"`
	BDTAmount     *decimal.Decimal `json:"bdt_amount"`
	CustomsDuty   *decimal.Decimal `json:"customs_duty"`
	OtherCosts    *decimal.Decimal `json:"other_costs"`

	LCNumber    string     `json:"lc_number"`
	LCDate      *time.Time `json:"lc_date"`
	Bank        string     `json:"bank"`
	Branch      string     `json:"branch"`
	BankAddress string     `json:"bank_address"`
	UnitsPerLC  int        `json:"units_per_lc"`

	// Documents maps present slots to stored file refs; absent slots are
	// simply missing from the map.
	Documents map[DocumentKind]string `json:"documents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalCost sums the BDT purchase amount with duty and other costs, treating
// absent components as zero. Returns nil when no component is present.
func (r *Record) TotalCost() *decimal.Decimal {
	var total decimal.Decimal
	present := false
	for _, d := range []*decimal.Decimal{r.BDTAmount, r.CustomsDuty, r.OtherCosts} {
		if d != nil {
			total = total.Add(*d)
			present = true
		}
	}
	if !present {
		return nil
	}
	return &total
}
