package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const stockSheet = "Stock"

// StockWorkbookFilename is the deterministic download name for the
// spreadsheet export generated on day.
func StockWorkbookFilename(day time.Time) string {
	return "stock-report-" + day.Format("2006-01-02") + ".xlsx"
}

// StockWorkbook builds an .xlsx workbook from the same row model the PDF
// stock list uses.
func StockWorkbook(rows []StockRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(stockSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	headers := []string{"#", "Car", "Chassis", "Grade", "Mileage", "Color / CC", "Features", "Price", "Detail URL"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(stockSheet, cell, header)
		f.SetCellStyle(stockSheet, cell, cell, headerStyle)
	}

	for i, row := range rows {
		values := []any{row.Index, row.Descriptor, row.Chassis, row.Grade, row.Mileage, row.ColorCC, row.Features, row.Price, row.DetailURL}
		for col, value := range values {
			cell := fmt.Sprintf("%s%d", string(rune('A'+col)), i+2)
			f.SetCellValue(stockSheet, cell, value)
		}
	}

	for i := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(stockSheet, col, col, 18)
	}
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
