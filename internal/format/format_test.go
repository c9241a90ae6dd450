package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAmountNilVersusZero(t *testing.T) {
	require.Equal(t, "N/A", Amount(nil))
	require.Equal(t, "0", Amount(dec("0")))
	require.Equal(t, "N/A", AmountFixed(nil))
	require.Equal(t, "0.00", AmountFixed(dec("0")))
}

func TestAmountGrouping(t *testing.T) {
	require.Equal(t, "1,250,000", Amount(dec("1250000")))
	require.Equal(t, "12,345.67", Amount(dec("12345.67")))
	require.Equal(t, "BDT 3,500,000", BDT(dec("3500000")))
	require.Equal(t, "N/A", BDT(nil))
}

func TestDatesNil(t *testing.T) {
	require.Equal(t, "N/A", ShortDate(nil))
	require.Equal(t, "N/A", MediumDate(nil))
	require.Equal(t, "N/A", LongDate(nil))
	require.Equal(t, "N/A", OrdinalDate(nil))
	zero := time.Time{}
	require.Equal(t, "N/A", ShortDate(&zero))
}

func TestDateLayouts(t *testing.T) {
	d := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "05-3-26", ShortDate(&d))
	require.Equal(t, "Mar 5, 2026", MediumDate(&d))
	require.Equal(t, "March 5, 2026", LongDate(&d))
	require.Equal(t, "March 5th, 2026", OrdinalDate(&d))
}

func TestOrdinalSuffix(t *testing.T) {
	cases := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th",
		11: "th", 12: "th", 13: "th",
		21: "st", 22: "nd", 23: "rd", 24: "th", 31: "st",
	}
	for day, want := range cases {
		require.Equal(t, want, ordinalSuffix(day), "day %d", day)
	}
}
