package model

import "github.com/shopspring/decimal"

// Stats summarizes the invoices of a workspace.
type Stats struct {
	Total   int
	Draft   int
	Sent    int
	Paid    int
	Overdue int
	// Outstanding is the sum of the totals of sent and overdue invoices.
	Outstanding decimal.Decimal
	// Collected is the sum of the totals of paid invoices.
	Collected decimal.Decimal
}

// ComputeStats counts invoices per status.
func ComputeStats(invoices []Invoice) Stats {
	st := Stats{Total: len(invoices), Outstanding: decimal.Zero, Collected: decimal.Zero}
	for _, inv := range invoices {
		total := Total(inv.LineItems, inv.DiscountAmount)
		switch inv.Status {
		case InvoiceStatusDraft:
			st.Draft++
		case InvoiceStatusSent:
			st.Sent++
			st.Outstanding = st.Outstanding.Add(total)
		case InvoiceStatusPaid:
			st.Paid++
			st.Collected = st.Collected.Add(total)
		case InvoiceStatusOverdue:
			st.Overdue++
			st.Outstanding = st.Outstanding.Add(total)
		}
	}
	return st
}

// Stats summarizes the cached invoices.
func (w *Workspace) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ComputeStats(w.invoices)
}
