package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcr-trading/backoffice/internal/inventory"
	"github.com/tcr-trading/backoffice/internal/payments"
)

// fontDirForTest returns a directory holding arial.ttf, skipping the test
// when none is available on the machine.
func fontDirForTest(t *testing.T) string {
	t.Helper()
	dir := filepath.Join("testdata", "fonts")
	if _, err := os.Stat(filepath.Join(dir, regularFile)); err != nil {
		t.Skipf("no %s under %s; skipping PDF rendering", regularFile, dir)
	}
	return dir
}

func TestNewDocMissingFonts(t *testing.T) {
	_, err := NewDoc(t.TempDir())
	require.Error(t, err)
}

func TestStockListRenders(t *testing.T) {
	gen := NewStockListGenerator(Company{Name: "TCR Trading", Address: "Dhaka", Phone: "01", Email: "x@y"}, fontDirForTest(t), "http://x")

	cars := []inventory.Car{
		car(1, "Toyota", "Aqua", 2019, "1500000"),
		car(2, "Toyota", "Aqua", 2017, ""),
		car(3, "Honda", "Vezel", 2019, "2200000"),
	}
	pdf, err := gen.Generate(cars)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	require.Equal(t, "%PDF", string(pdf[:4]))
}

func TestSalesReportRenders(t *testing.T) {
	gen := NewSalesReportGenerator(Company{Name: "TCR Trading"}, fontDirForTest(t))

	c := car(1, "Toyota", "Aqua", 2019, "2000000")
	rec := payments.Record{ID: 7, Wholesaler: "Rahim Motors", SaleAmount: c.Price}
	rec.Installments = []payments.Installment{{Description: "First payment", Method: payments.MethodBank}}
	rec.FillBalances()

	pdf, err := gen.Generate(rec, &c, "F26TCR.ab12-07")
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(pdf[:4]))

	// Missing linked car degrades to N/A attributes, not an error.
	pdf, err = gen.Generate(rec, nil, "F26TCR.ab12-07")
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
}
