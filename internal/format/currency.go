// Package format holds the locale-aware currency and date formatting used by
// list views, detail views and generated documents.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NotAvailable is rendered wherever a nullable value is absent. Callers must
// never coerce a missing amount to zero before formatting.
const NotAvailable = "N/A"

var printer = message.NewPrinter(language.English)

// Amount renders a nullable monetary value with thousands separators and up
// to two fraction digits. A nil amount renders as NotAvailable; a zero amount
// renders as a formatted zero.
func Amount(d *decimal.Decimal) string {
	if d == nil {
		return NotAvailable
	}
	f, _ := d.Float64()
	return printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(0),
		number.MaxFractionDigits(2)))
}

// AmountFixed renders like Amount but always with two fraction digits. Used
// by the document templates where columns must line up.
func AmountFixed(d *decimal.Decimal) string {
	if d == nil {
		return NotAvailable
	}
	f, _ := d.Float64()
	return printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// BDT prefixes the local currency code. Nil still renders NotAvailable with
// no prefix.
func BDT(d *decimal.Decimal) string {
	if d == nil {
		return NotAvailable
	}
	return "BDT " + Amount(d)
}
