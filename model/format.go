package model

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/xeonx/timeago"
)

var timeagoEnglish = timeago.NoMax(timeago.English)

// FormatCurrency renders an amount in US dollars, e.g. $1,234.50 or -$5.00.
func FormatCurrency(amount decimal.Decimal) string {
	a := amount.Round(2)
	sign := ""
	if a.IsNegative() {
		sign = "-"
		a = a.Neg()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", a.InexactFloat64())
}

// FormatDate renders 2024-03-05 as "March 5, 2024". Empty input gives an
// empty string, anything unparsable is returned as is.
func FormatDate(date string) string {
	return formatDate(date, "January 2, 2006")
}

// FormatShortDate renders 2024-03-05 as "Mar 5, 2024".
func FormatShortDate(date string) string {
	return formatDate(date, "Jan 2, 2006")
}

func formatDate(date, layout string) string {
	if date == "" {
		return ""
	}
	t, err := parseDate(date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

// FormatDue describes a due date relative to now, e.g. "in 12 days" or
// "3 days ago".
func FormatDue(dueDate string, now time.Time) string {
	if dueDate == "" {
		return ""
	}
	t, err := parseDate(dueDate)
	if err != nil {
		return dueDate
	}
	return timeagoEnglish.FormatReference(t, now)
}
