package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tcr-trading/backoffice/internal/format"
	"github.com/tcr-trading/backoffice/internal/inventory"
)

// Company identifies the dealership on printed documents.
type Company struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// StockRow is one printable line of the stock list. The PDF and spreadsheet
// exports share it.
type StockRow struct {
	Index      int
	Make       string
	Model      string
	Descriptor string
	Chassis    string
	Grade      string
	Mileage    string
	ColorCC    string
	Features   string
	Price      string
	DetailURL  string
	GroupStart bool
}

const priceOnRequest = "Price on request"

// maxFeatureChars keeps the feature column to a single readable block.
const maxFeatureChars = 60

// BuildStockRows sorts cars by (make asc, model asc, year desc) and maps
// them to printable rows, marking the first row of each (make, model) run as
// a group start.
func BuildStockRows(cars []inventory.Car, baseURL string) []StockRow {
	sorted := make([]inventory.Car, len(cars))
	copy(sorted, cars)
	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := coll.CompareString(sorted[i].Make, sorted[j].Make); c != 0 {
			return c < 0
		}
		if c := coll.CompareString(sorted[i].Model, sorted[j].Model); c != 0 {
			return c < 0
		}
		return sorted[i].Year > sorted[j].Year
	})

	rows := make([]StockRow, 0, len(sorted))
	prevGroup := ""
	for i, car := range sorted {
		group := strings.ToLower(car.Make + "|" + car.Model)
		price := priceOnRequest
		if car.Price != nil {
			price = format.BDT(car.Price)
		}
		features := car.Features
		if runes := []rune(features); len(runes) > maxFeatureChars {
			features = string(runes[:maxFeatureChars-1]) + "…"
		}
		descriptor := fmt.Sprintf("%s %s %d", car.Make, car.Model, car.Year)
		if car.Package != "" {
			descriptor += " " + car.Package
		}
		rows = append(rows, StockRow{
			Index:      i + 1,
			Make:       car.Make,
			Model:      car.Model,
			Descriptor: descriptor,
			Chassis:    car.Chassis(),
			Grade:      car.Grade,
			Mileage:    fmt.Sprintf("%d km", car.Mileage),
			ColorCC:    fmt.Sprintf("%s / %d cc", car.Color, car.EngineCC),
			Features:   features,
			Price:      price,
			DetailURL:  fmt.Sprintf("%s/cars/%d", strings.TrimRight(baseURL, "/"), car.ID),
			GroupStart: group != prevGroup,
		})
		prevGroup = group
	}
	return rows
}

// StockListFilename is the deterministic download name for a stock list
// generated on day.
func StockListFilename(day time.Time) string {
	return "stock-report-" + day.Format("2006-01-02") + ".pdf"
}

// StockListGenerator renders the tabular stock list PDF.
type StockListGenerator struct {
	company Company
	fontDir string
	baseURL string
}

// NewStockListGenerator constructs a generator.
func NewStockListGenerator(company Company, fontDir, baseURL string) *StockListGenerator {
	return &StockListGenerator{company: company, fontDir: fontDir, baseURL: baseURL}
}

// Generate renders the stock list for cars. A panic partway through table
// construction degrades to a plain line-per-car listing instead of no output.
func (g *StockListGenerator) Generate(cars []inventory.Car) (pdf []byte, err error) {
	rows := BuildStockRows(cars, g.baseURL)

	defer func() {
		if r := recover(); r != nil {
			pdf, err = g.fallbackListing(rows, fmt.Errorf("stock list layout: %v", r))
		}
	}()

	doc, err := NewDoc(g.fontDir)
	if err != nil {
		return nil, err
	}

	y := g.drawPageHeader(doc)
	colWidths := []float64{25, 130, 45, 55, 75, 105, 65, 35}
	rowHeight := 42.0
	groupHeight := 16.0

	y = g.drawColumnHeaders(doc, y, colWidths)
	for _, row := range rows {
		needed := rowHeight
		if row.GroupStart {
			needed += groupHeight
		}
		if y+needed > doc.BottomY() {
			g.drawPageFooter(doc)
			doc.NewPage()
			y = g.drawPageHeader(doc)
			y = g.drawColumnHeaders(doc, y, colWidths)
		}

		if row.GroupStart {
			doc.DrawRect(margin, y, doc.ContentWidth(), groupHeight, ColorGray, true)
			if _, err := doc.DrawText(row.Make+" "+row.Model, margin+4, y+3, TextOpts{Size: 9, Bold: true}); err != nil {
				return nil, err
			}
			y += groupHeight
		}

		if err := g.drawRow(doc, row, y, colWidths, rowHeight); err != nil {
			return nil, err
		}
		y += rowHeight
	}
	g.drawPageFooter(doc)

	return doc.Bytes(), nil
}

func (g *StockListGenerator) drawPageHeader(doc *Doc) float64 {
	y := margin
	lines, _ := doc.DrawText(g.company.Name, margin, y, TextOpts{Size: 15, Bold: true})
	y += float64(lines) * 20
	info := fmt.Sprintf("%s  |  %s  |  %s", g.company.Address, g.company.Phone, g.company.Email)
	lines, _ = doc.DrawText(info, margin, y, TextOpts{Size: 8, MaxWidth: doc.ContentWidth()})
	y += float64(lines) * 11
	now := time.Now()
	lines, _ = doc.DrawText("Stock List - printed on "+format.OrdinalDate(&now), margin, y, TextOpts{Size: 9})
	y += float64(lines)*12 + 6
	return y
}

func (g *StockListGenerator) drawColumnHeaders(doc *Doc, y float64, widths []float64) float64 {
	headers := []string{"#", "Car", "Grade", "Mileage", "Color / CC", "Features", "Price", "View"}
	h := 18.0
	x := margin
	doc.DrawRect(margin, y, doc.ContentWidth(), h, ColorGray, true)
	for i, header := range headers {
		_ = doc.DrawTableCell(header, x, y, widths[i], h, CellOpts{Size: 8, Bold: true})
		x += widths[i]
	}
	return y + h
}

func (g *StockListGenerator) drawRow(doc *Doc, row StockRow, y float64, widths []float64, h float64) error {
	x := margin
	if err := doc.DrawTableCell(fmt.Sprintf("%d", row.Index), x, y, widths[0], h, CellOpts{Size: 8}); err != nil {
		return err
	}
	x += widths[0]

	// Descriptor lines in red, chassis line in black.
	runs := []TextRun{
		{Text: row.Descriptor, Color: ColorRed},
		{Text: row.Chassis, Color: ColorBlack},
	}
	if err := doc.DrawStyledCell(runs, x, y, widths[1], h, CellOpts{Size: 8}); err != nil {
		return err
	}
	x += widths[1]

	cells := []string{row.Grade, row.Mileage, row.ColorCC, row.Features, row.Price}
	for i, text := range cells {
		if err := doc.DrawTableCell(text, x, y, widths[2+i], h, CellOpts{Size: 8}); err != nil {
			return err
		}
		x += widths[2+i]
	}

	// The view cell text is drawn in link styling and overlaid with the
	// clickable region spanning the full cell bounds.
	if err := doc.DrawTableCell("View", x, y, widths[7], h, CellOpts{Size: 8, Color: ColorBlue}); err != nil {
		return err
	}
	doc.AddLink(row.DetailURL, x, y, widths[7], h)
	return nil
}

func (g *StockListGenerator) drawPageFooter(doc *Doc) {
	footer := fmt.Sprintf("Page %d", doc.PageNum())
	_, _ = doc.DrawText(footer, pageWidth/2-15, doc.BottomY()-12, TextOpts{Size: 8})
}

// fallbackListing prints one identifier line per row. Kept deliberately
// minimal so it cannot fail the same way the table layout did.
func (g *StockListGenerator) fallbackListing(rows []StockRow, cause error) ([]byte, error) {
	doc, err := NewDoc(g.fontDir)
	if err != nil {
		return nil, fmt.Errorf("%v; fallback failed: %w", cause, err)
	}
	y := margin
	lines, _ := doc.DrawText("Stock List (plain)", margin, y, TextOpts{Size: 12, Bold: true})
	y += float64(lines) * 18
	for _, row := range rows {
		if y > doc.BottomY()-14 {
			y = doc.NewPage()
		}
		line := fmt.Sprintf("%d. %s - %s", row.Index, row.Descriptor, row.Chassis)
		n, _ := doc.DrawText(line, margin, y, TextOpts{Size: 9, MaxWidth: doc.ContentWidth()})
		y += float64(n) * 13
	}
	return doc.Bytes(), nil
}
