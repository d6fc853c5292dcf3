package model

import (
	"slices"
	"strings"
	"time"
)

// Sort keys for SortInvoices.
const (
	SortByDate   = "date"
	SortByNumber = "number"
	SortByAmount = "amount"
)

// Sort orders for SortInvoices.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// InvoiceListQuery captures search, filter and sort options for listing invoices.
type InvoiceListQuery struct {
	Search string        // Optional: substring of number, client name or client email
	Status InvoiceStatus // Optional: exact status, "" or "all" for every status
	From   string        // Optional: first issue date (inclusive)
	To     string        // Optional: last issue date (inclusive)
	Sort   string        // "date" (default), "number", "amount"
	Order  string        // "desc" (default), "asc"
}

// ListInvoices applies search, status filter, date range and sorting in
// that order, like the invoice list view. The input is not modified.
//
// Defaults: newest issue date first.
func ListInvoices(invoices []Invoice, q InvoiceListQuery) []Invoice {
	status := q.Status
	if status == "" {
		status = InvoiceStatusAll
	}
	sortBy := q.Sort
	if sortBy == "" {
		sortBy = SortByDate
	}
	order := q.Order
	if order == "" {
		order = OrderDesc
	}
	result := SearchInvoices(invoices, q.Search)
	result = FilterInvoicesByStatus(result, status)
	result = FilterInvoicesByDateRange(result, q.From, q.To)
	return SortInvoices(result, sortBy, order)
}

// SearchInvoices matches query case-insensitively against the invoice
// number, the client name and the client email. A blank query returns
// invoices unchanged.
func SearchInvoices(invoices []Invoice, query string) []Invoice {
	if strings.TrimSpace(query) == "" {
		return invoices
	}
	q := strings.ToLower(query)
	var out []Invoice
	for _, inv := range invoices {
		if strings.Contains(strings.ToLower(inv.InvoiceNumber), q) ||
			strings.Contains(strings.ToLower(inv.Client.Name), q) ||
			strings.Contains(strings.ToLower(inv.Client.Email), q) {
			out = append(out, inv)
		}
	}
	return out
}

// FilterInvoicesByStatus keeps invoices with exactly status. InvoiceStatusAll
// keeps everything.
func FilterInvoicesByStatus(invoices []Invoice, status InvoiceStatus) []Invoice {
	if status == InvoiceStatusAll {
		return invoices
	}
	var out []Invoice
	for _, inv := range invoices {
		if inv.Status == status {
			out = append(out, inv)
		}
	}
	return out
}

// FilterInvoicesByDateRange keeps invoices issued between start and end,
// both inclusive. An empty bound is open. Invoices whose issue date cannot
// be parsed are kept, as are all invoices for an unparsable bound.
func FilterInvoicesByDateRange(invoices []Invoice, start, end string) []Invoice {
	startT, hasStart := optDate(start)
	endT, hasEnd := optDate(end)
	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		issued, err := parseDate(inv.IssueDate)
		if err == nil {
			if hasStart && issued.Before(startT) {
				continue
			}
			if hasEnd && issued.After(endT) {
				continue
			}
		}
		out = append(out, inv)
	}
	return out
}

func optDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SortInvoices returns a stably sorted copy of invoices. sortBy is one of
// SortByDate, SortByNumber (lexicographic) or SortByAmount (computed total).
func SortInvoices(invoices []Invoice, sortBy, order string) []Invoice {
	out := slices.Clone(invoices)
	cmp := func(a, b Invoice) int {
		switch sortBy {
		case SortByNumber:
			return strings.Compare(a.InvoiceNumber, b.InvoiceNumber)
		case SortByAmount:
			return Total(a.LineItems, a.DiscountAmount).Cmp(Total(b.LineItems, b.DiscountAmount))
		default:
			return issueTime(a).Compare(issueTime(b))
		}
	}
	slices.SortStableFunc(out, func(a, b Invoice) int {
		if order == OrderDesc {
			return -cmp(a, b)
		}
		return cmp(a, b)
	})
	return out
}

// issueTime is the zero time for an unparsable date.
func issueTime(inv Invoice) time.Time {
	t, _ := parseDate(inv.IssueDate)
	return t
}

// SearchClients matches query case-insensitively against name and email.
func SearchClients(clients []Client, query string) []Client {
	q := strings.ToLower(query)
	var out []Client
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out
}
