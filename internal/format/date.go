package format

import (
	"fmt"
	"time"
)

// ShortDate renders "DD-M-YY", the compact form used in tables.
func ShortDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}
	return t.Format("02-1-06")
}

// MediumDate renders "Mon D, YYYY".
func MediumDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}
	return t.Format("Jan 2, 2006")
}

// LongDate renders "Month D, YYYY".
func LongDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}
	return t.Format("January 2, 2006")
}

// OrdinalDate renders "Month Dth, YYYY" for the document templates.
func OrdinalDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}
	return fmt.Sprintf("%s %d%s, %d", t.Month().String(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

// ordinalSuffix follows English usage: 11, 12 and 13 take "th" regardless of
// their ones digit.
func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
