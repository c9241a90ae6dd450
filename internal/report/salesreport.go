package report

import (
	"fmt"

	"github.com/tcr-trading/backoffice/internal/format"
	"github.com/tcr-trading/backoffice/internal/inventory"
	"github.com/tcr-trading/backoffice/internal/payments"
)

// SalesReportFilename is the deterministic download name for a sales report.
func SalesReportFilename(refNo string) string {
	return "Sales_Tracking_Report_" + refNo + ".pdf"
}

// SalesReportGenerator renders the structured sales record PDF.
type SalesReportGenerator struct {
	company Company
	fontDir string
}

// NewSalesReportGenerator constructs a generator.
func NewSalesReportGenerator(company Company, fontDir string) *SalesReportGenerator {
	return &SalesReportGenerator{company: company, fontDir: fontDir}
}

type labelValue struct {
	label string
	value string
}

// Generate renders the sales tracking report for rec. car may be nil when
// the linked record has been removed; its attributes render as N/A.
// A panic partway through degrades to a plain listing of installment lines.
func (g *SalesReportGenerator) Generate(rec payments.Record, car *inventory.Car, refNo string) (pdf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			pdf, err = g.fallbackListing(rec, refNo, fmt.Errorf("sales report layout: %v", r))
		}
	}()

	doc, err := NewDoc(g.fontDir)
	if err != nil {
		return nil, err
	}

	y := g.drawHeader(doc, refNo)
	y = g.drawCarGrid(doc, car, y)
	y = g.drawSections(doc, rec, y)
	g.drawInstallments(doc, rec, y)

	return doc.Bytes(), nil
}

func (g *SalesReportGenerator) drawHeader(doc *Doc, refNo string) float64 {
	y := margin
	lines, _ := doc.DrawText(g.company.Name, margin, y, TextOpts{Size: 15, Bold: true})
	y += float64(lines) * 20
	info := fmt.Sprintf("%s  |  %s  |  %s", g.company.Address, g.company.Phone, g.company.Email)
	lines, _ = doc.DrawText(info, margin, y, TextOpts{Size: 8, MaxWidth: doc.ContentWidth()})
	y += float64(lines) * 11
	lines, _ = doc.DrawText("Ref: "+refNo, margin, y, TextOpts{Size: 9})
	y += float64(lines) * 13
	lines, _ = doc.DrawText("Sales Tracking Report", margin, y, TextOpts{Size: 13, Bold: true})
	y += float64(lines)*18 + 8
	return y
}

// drawCarGrid renders the fixed 4x3 attribute grid: a label row followed by
// a value row, four times.
func (g *SalesReportGenerator) drawCarGrid(doc *Doc, car *inventory.Car, y float64) float64 {
	attrs := carAttributes(car)
	colWidth := doc.ContentWidth() / 3
	labelHeight, valueHeight := 14.0, 20.0

	for rowStart := 0; rowStart < len(attrs); rowStart += 3 {
		x := margin
		for i := rowStart; i < rowStart+3 && i < len(attrs); i++ {
			doc.DrawRect(x, y, colWidth, labelHeight, ColorGray, true)
			_ = doc.DrawTableCell(attrs[i].label, x, y, colWidth, labelHeight, CellOpts{Size: 7, Bold: true})
			x += colWidth
		}
		y += labelHeight
		x = margin
		for i := rowStart; i < rowStart+3 && i < len(attrs); i++ {
			_ = doc.DrawTableCell(attrs[i].value, x, y, colWidth, valueHeight, CellOpts{Size: 9})
			x += colWidth
		}
		y += valueHeight
	}
	return y + 12
}

func carAttributes(car *inventory.Car) []labelValue {
	na := func(s string) string {
		if s == "" {
			return format.NotAvailable
		}
		return s
	}
	if car == nil {
		labels := []string{"Make", "Model", "Year", "Package", "Color", "Fuel", "Mileage", "Engine CC", "Grade", "Chassis No", "Reference No", "Status"}
		attrs := make([]labelValue, len(labels))
		for i, l := range labels {
			attrs[i] = labelValue{label: l, value: format.NotAvailable}
		}
		return attrs
	}
	return []labelValue{
		{"Make", na(car.Make)},
		{"Model", na(car.Model)},
		{"Year", fmt.Sprintf("%d", car.Year)},
		{"Package", na(car.Package)},
		{"Color", na(car.Color)},
		{"Fuel", na(car.Fuel)},
		{"Mileage", fmt.Sprintf("%d km", car.Mileage)},
		{"Engine CC", fmt.Sprintf("%d", car.EngineCC)},
		{"Grade", na(car.Grade)},
		{"Chassis No", na(car.Chassis())},
		{"Reference No", na(car.ReferenceNo)},
		{"Status", na(string(car.Status))},
	}
}

// drawSections lays wholesaler and customer label:value pairs out in two
// columns.
func (g *SalesReportGenerator) drawSections(doc *Doc, rec payments.Record, y float64) float64 {
	remaining := rec.RemainingBalance()
	pairs := []labelValue{
		{"Wholesaler", rec.Wholesaler},
		{"Address", rec.Address},
		{"Sale Amount", format.BDT(rec.SaleAmount)},
		{"Sale Date", format.MediumDate(rec.SaleDate)},
		{"NID Number", rec.NIDNumber},
		{"TIN", rec.TIN},
		{"Contact", rec.Contact},
		{"Email", rec.Email},
		{"Paid", format.BDT(ptr(rec.PaidTotal()))},
		{"Remaining", format.BDT(&remaining)},
	}

	colWidth := doc.ContentWidth() / 2
	lineH := 15.0
	for i, pair := range pairs {
		x := margin + float64(i%2)*colWidth
		value := pair.value
		if value == "" {
			value = format.NotAvailable
		}
		_, _ = doc.DrawText(pair.label+":", x, y, TextOpts{Size: 8, Bold: true})
		_, _ = doc.DrawText(value, x+80, y, TextOpts{Size: 9, MaxWidth: colWidth - 90})
		if i%2 == 1 {
			y += lineH
		}
	}
	if len(pairs)%2 == 1 {
		y += lineH
	}
	return y + 12
}

// drawInstallments renders the bordered installment table. Only a manual
// height check runs before each row; the header block is not repeated on
// overflow pages.
func (g *SalesReportGenerator) drawInstallments(doc *Doc, rec payments.Record, y float64) {
	widths := []float64{25, 70, 150, 75, 70, 70, 75}
	headers := []string{"#", "Date", "Description", "Amount", "Method", "Cheque", "Balance"}
	headerH, rowH := 16.0, 18.0

	x := margin
	doc.DrawRect(margin, y, doc.ContentWidth(), headerH, ColorGray, true)
	for i, h := range headers {
		_ = doc.DrawTableCell(h, x, y, widths[i], headerH, CellOpts{Size: 8, Bold: true})
		x += widths[i]
	}
	y += headerH

	for i, inst := range rec.Installments {
		if y+rowH > doc.BottomY() {
			y = doc.NewPage()
		}
		cells := []string{
			fmt.Sprintf("%d", i+1),
			format.ShortDate(inst.Date),
			inst.Description,
			format.Amount(inst.Amount),
			string(inst.Method),
			inst.ChequeNo,
			format.Amount(inst.Balance),
		}
		x = margin
		for j, text := range cells {
			_ = doc.DrawTableCell(text, x, y, widths[j], rowH, CellOpts{Size: 8})
			x += widths[j]
		}
		y += rowH
	}
}

func (g *SalesReportGenerator) fallbackListing(rec payments.Record, refNo string, cause error) ([]byte, error) {
	doc, err := NewDoc(g.fontDir)
	if err != nil {
		return nil, fmt.Errorf("%v; fallback failed: %w", cause, err)
	}
	y := margin
	lines, _ := doc.DrawText("Sales Report "+refNo+" (plain)", margin, y, TextOpts{Size: 12, Bold: true})
	y += float64(lines) * 18
	for i, inst := range rec.Installments {
		if y > doc.BottomY()-14 {
			y = doc.NewPage()
		}
		line := fmt.Sprintf("%d. %s %s", i+1, format.ShortDate(inst.Date), format.Amount(inst.Amount))
		n, _ := doc.DrawText(line, margin, y, TextOpts{Size: 9})
		y += float64(n) * 13
	}
	return doc.Bytes(), nil
}

func ptr[T any](v T) *T { return &v }
