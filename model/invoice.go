package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is set by the user. Nothing derives a status from the dates.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// InvoiceStatusAll is the filter sentinel that matches every status.
const InvoiceStatusAll InvoiceStatus = "all"

// InvoiceStatuses lists the valid statuses in display order.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
}

// Valid reports whether s is one of the four invoice statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// ParseInvoiceStatus converts user input into a status.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	st := InvoiceStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown invoice status %q", s)
	}
	return st, nil
}

// DateLayout is the format of issue and due dates.
const DateLayout = "2006-01-02"

// dueAfter is the default payment period of a new invoice.
const dueAfter = 30 * 24 * time.Hour

// DefaultPaymentTerms is used when neither the invoice nor the business
// profile carries payment terms.
const DefaultPaymentTerms = "Payment due within 30 days of invoice date."

// LineItem contains one billable row of an invoice.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TaxRate     float64 `json:"taxRate"`
}

// Invoice embeds snapshots of the business profile and the client taken at
// save time. Later edits of either never change a saved invoice.
type Invoice struct {
	ID              string        `json:"id"`
	InvoiceNumber   string        `json:"invoiceNumber"`
	Status          InvoiceStatus `json:"status"`
	IssueDate       string        `json:"issueDate"`
	DueDate         string        `json:"dueDate"`
	BusinessInfo    BusinessInfo  `json:"businessInfo"`
	Client          Client        `json:"client"`
	LineItems       []LineItem    `json:"lineItems"`
	Notes           string        `json:"notes"`
	PaymentTerms    string        `json:"paymentTerms"`
	ReferenceNumber string        `json:"referenceNumber"`
	DiscountAmount  float64       `json:"discountAmount"`
}

// Totals collects the computed amounts of an invoice.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Totals computes subtotal, tax and total of the invoice.
func (inv Invoice) Totals() Totals {
	return Totals{
		Subtotal: Subtotal(inv.LineItems),
		Tax:      TaxAmount(inv.LineItems),
		Discount: decimal.NewFromFloat(inv.DiscountAmount),
		Total:    Total(inv.LineItems, inv.DiscountAmount),
	}
}

// NewLineItem returns an empty line item with quantity 1.
func NewLineItem(id string) LineItem {
	return LineItem{
		ID:       id,
		Quantity: 1,
	}
}

func today(now time.Time) string {
	return now.Format(DateLayout)
}

func defaultDueDate(now time.Time) string {
	return now.Add(dueAfter).Format(DateLayout)
}

// parseDate accepts plain dates as well as full timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
