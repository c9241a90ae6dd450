package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestStockWorkbookRoundTrip(t *testing.T) {
	rows := []StockRow{
		{Index: 1, Descriptor: "Toyota Aqua 2019", Chassis: "NZE-0001", Grade: "4.5", Mileage: "42000 km", ColorCC: "Pearl / 1500 cc", Price: "Price on request", DetailURL: "http://x/cars/1"},
		{Index: 2, Descriptor: "Honda Vezel 2019", Chassis: "RU1-0002", Grade: "4", Mileage: "51000 km", ColorCC: "Black / 1500 cc", Price: "৳2,200,000", DetailURL: "http://x/cars/2"},
	}

	book, err := StockWorkbook(rows)
	require.NoError(t, err)
	require.NotEmpty(t, book)

	f, err := excelize.OpenReader(bytes.NewReader(book))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue(stockSheet, "B1")
	require.NoError(t, err)
	require.Equal(t, "Car", got)

	got, err = f.GetCellValue(stockSheet, "B2")
	require.NoError(t, err)
	require.Equal(t, "Toyota Aqua 2019", got)

	got, err = f.GetCellValue(stockSheet, "H3")
	require.NoError(t, err)
	require.Equal(t, "৳2,200,000", got)

	sheets := f.GetSheetList()
	require.Equal(t, []string{stockSheet}, sheets)
}
