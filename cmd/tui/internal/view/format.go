package view

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display formatting lives here, not in the core: stores and services only
// ever see integers and ISO timestamps.

var vnd = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount in the smallest currency unit with Vietnamese
// digit grouping, e.g. 1234567 -> "1.234.567 ₫".
func FormatVND(amount int64) string {
	return vnd.Sprintf("%d ₫", amount)
}

// FormatDateTime renders a stored RFC 3339 timestamp as dd/MM/yyyy HH:mm.
// Unparsable input is shown as-is rather than hidden.
func FormatDateTime(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}

	return t.Format("02/01/2006 15:04")
}

// FormatDateOnly renders a day key (or full timestamp) as dd/MM/yyyy.
func FormatDateOnly(iso string) string {
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t.Format("02/01/2006")
	}

	if t, err := time.Parse(time.DateOnly, iso); err == nil {
		return t.Format("02/01/2006")
	}

	return iso
}
