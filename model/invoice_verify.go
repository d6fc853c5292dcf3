package model

import (
	"strings"
)

// InvoiceProblem is a finding of VerifyInvoice.
type InvoiceProblem struct {
	Level   string // "error" or "warning"
	Message string
}

// HasErrors reports whether any problem has level error.
func HasErrors(problems []InvoiceProblem) bool {
	for _, p := range problems {
		if p.Level == "error" {
			return true
		}
	}
	return false
}

// VerifyInvoice lists what keeps inv from being a valid EN16931 invoice.
// Saving never depends on it, only the XML export does.
func VerifyInvoice(inv Invoice) []InvoiceProblem {
	var problems []InvoiceProblem
	b := inv.BusinessInfo

	// [BR-25]-Each Invoice line (BG-25) shall contain the Item name (BT-153).
	for _, item := range inv.LineItems {
		if strings.TrimSpace(item.Description) == "" {
			problems = append(problems, InvoiceProblem{
				Level:   "error",
				Message: "One or more line items have no description.",
			})
			break
		}
	}
	// [BR-6]-An Invoice shall contain the Seller name (BT-27).
	if strings.TrimSpace(b.Name) == "" {
		problems = append(problems, InvoiceProblem{
			Level:   "error",
			Message: "The business profile has no name.",
		})
	}
	// [BR-7]-An Invoice shall contain the Buyer name (BT-44).
	if strings.TrimSpace(inv.Client.Name) == "" {
		problems = append(problems, InvoiceProblem{
			Level:   "error",
			Message: "The invoice has no client name.",
		})
	}
	if strings.TrimSpace(b.Address) == "" {
		problems = append(problems, InvoiceProblem{
			Level:   "warning",
			Message: "The business profile has no address.",
		})
	}
	// [BR-CO-26]-Seller identifier, legal registration identifier and/or VAT identifier shall be present.
	if strings.TrimSpace(b.TaxID) == "" {
		problems = append(problems, InvoiceProblem{
			Level:   "warning",
			Message: "The business profile has no tax ID.",
		})
	}
	if strings.TrimSpace(inv.Client.Address) == "" {
		problems = append(problems, InvoiceProblem{
			Level:   "warning",
			Message: "The client has no address.",
		})
	}
	if Total(inv.LineItems, inv.DiscountAmount).IsNegative() {
		problems = append(problems, InvoiceProblem{
			Level:   "error",
			Message: "The discount is larger than the invoice amount.",
		})
	}
	return problems
}
