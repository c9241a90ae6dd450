package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tcr-trading/backoffice/internal/inventory"
)

func car(id int64, make, model string, year int, price string) inventory.Car {
	c := inventory.Car{ID: id, Make: make, Model: model, Year: year, ChassisNo: "NZE-000" + make}
	if price != "" {
		p := decimal.RequireFromString(price)
		c.Price = &p
	}
	return c
}

func TestBuildStockRowsSortAndGrouping(t *testing.T) {
	cars := []inventory.Car{
		car(1, "Toyota", "Aqua", 2017, "1500000"),
		car(2, "Honda", "Vezel", 2019, "2200000"),
		car(3, "Toyota", "Aqua", 2019, "1800000"),
		car(4, "Toyota", "Axio", 2018, "1600000"),
	}

	rows := BuildStockRows(cars, "https://example.test")
	require.Len(t, rows, 4)

	// Make asc, model asc, year desc.
	require.Equal(t, "Honda Vezel 2019", rows[0].Descriptor)
	require.Equal(t, "Toyota Aqua 2019", rows[1].Descriptor)
	require.Equal(t, "Toyota Aqua 2017", rows[2].Descriptor)
	require.Equal(t, "Toyota Axio 2018", rows[3].Descriptor)

	// Group header before each (make, model) run only.
	require.True(t, rows[0].GroupStart)
	require.True(t, rows[1].GroupStart)
	require.False(t, rows[2].GroupStart)
	require.True(t, rows[3].GroupStart)

	require.Equal(t, "https://example.test/cars/2", rows[0].DetailURL)
	require.Equal(t, 1, rows[0].Index)
	require.Equal(t, 4, rows[3].Index)
}

func TestBuildStockRowsGroupKeyIgnoresCase(t *testing.T) {
	cars := []inventory.Car{
		car(1, "Toyota", "Aqua", 2018, ""),
		car(2, "toyota", "aqua", 2017, ""),
	}
	rows := BuildStockRows(cars, "http://x")
	require.True(t, rows[0].GroupStart)
	require.False(t, rows[1].GroupStart, "case-only differences stay in one group")
}

func TestBuildStockRowsPriceOnRequest(t *testing.T) {
	rows := BuildStockRows([]inventory.Car{car(1, "Nissan", "Note", 2018, "")}, "http://x")
	require.Equal(t, "Price on request", rows[0].Price)

	rows = BuildStockRows([]inventory.Car{car(1, "Nissan", "Note", 2018, "1250000")}, "http://x")
	require.Contains(t, rows[0].Price, "1,250,000")
}

func TestBuildStockRowsTruncatesFeatures(t *testing.T) {
	c := car(1, "Toyota", "Aqua", 2018, "")
	for range 20 {
		c.Features += "alloy wheels, "
	}
	rows := BuildStockRows([]inventory.Car{c}, "http://x")
	require.LessOrEqual(t, len([]rune(rows[0].Features)), maxFeatureChars)
}

func TestStockFilenames(t *testing.T) {
	day := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "stock-report-2026-01-05.pdf", StockListFilename(day))
	require.Equal(t, "stock-report-2026-01-05.xlsx", StockWorkbookFilename(day))
	require.Equal(t, "Sales_Tracking_Report_F26TCR.ab12-07.pdf", SalesReportFilename("F26TCR.ab12-07"))
}
