// Package fixtures builds invoices, clients and workspaces for tests.
package fixtures

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/billingcat/invoicedesk/model"
)

// Today is the clock of every fixture workspace.
var Today = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

// Clock returns Today.
func Clock() time.Time { return Today }

// Sequence returns an id generator yielding prefix-1, prefix-2, ...
func Sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// DiscardLogger drops all output.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestWorkspace opens a workspace on an empty in-memory store with a fixed
// clock and predictable ids.
func NewTestWorkspace(t *testing.T, opts ...model.Option) (*model.Workspace, *model.MemoryKV) {
	t.Helper()
	kv := model.NewMemoryKV()
	return OpenTestWorkspace(t, kv, opts...), kv
}

// OpenTestWorkspace opens a workspace on kv with the fixture defaults.
func OpenTestWorkspace(t *testing.T, kv model.KV, opts ...model.Option) *model.Workspace {
	t.Helper()
	all := append([]model.Option{
		model.WithClock(Clock),
		model.WithIDGenerator(Sequence("id")),
		model.WithLogger(DiscardLogger()),
	}, opts...)
	ws, err := model.OpenWorkspace(model.NewStorage(kv), all...)
	if err != nil {
		t.Fatalf("OpenWorkspace: %v", err)
	}
	return ws
}

// Item returns a line item.
func Item(id, description string, qty, price, taxRate float64) model.LineItem {
	return model.LineItem{
		ID:          id,
		Description: description,
		Quantity:    qty,
		UnitPrice:   price,
		TaxRate:     taxRate,
	}
}

// SampleItems are 2 x 50 at 10% and 1 x 30 untaxed: subtotal 130, tax 10.
func SampleItems() []model.LineItem {
	return []model.LineItem{
		Item("li-1", "Consulting", 2, 50, 10),
		Item("li-2", "Travel", 1, 30, 0),
	}
}

// InvoiceOption modifies a fixture invoice.
type InvoiceOption func(*model.Invoice)

func WithID(id string) InvoiceOption {
	return func(inv *model.Invoice) { inv.ID = id }
}

func WithNumber(number string) InvoiceOption {
	return func(inv *model.Invoice) { inv.InvoiceNumber = number }
}

func WithStatus(s model.InvoiceStatus) InvoiceOption {
	return func(inv *model.Invoice) { inv.Status = s }
}

func WithIssueDate(date string) InvoiceOption {
	return func(inv *model.Invoice) { inv.IssueDate = date }
}

func WithClient(c model.Client) InvoiceOption {
	return func(inv *model.Invoice) { inv.Client = c }
}

func WithItems(items ...model.LineItem) InvoiceOption {
	return func(inv *model.Invoice) { inv.LineItems = items }
}

func WithDiscount(d float64) InvoiceOption {
	return func(inv *model.Invoice) { inv.DiscountAmount = d }
}

// Client returns a client with a name and an email derived from it.
func Client(id, name string) model.Client {
	return model.Client{ID: id, Name: name, Email: "billing@example.com"}
}

// Business is a filled in business profile.
func Business() model.BusinessInfo {
	return model.BusinessInfo{
		Name:                "Acme Design",
		Email:               "hello@acme.example",
		Phone:               "+1 555 0100",
		Address:             "1 Main Street\nSpringfield\nUnited States",
		TaxID:               "US123456789",
		DefaultPaymentTerms: "Net 14",
	}
}

// Invoice returns a valid invoice INV-001 for client Acme with SampleItems.
func Invoice(opts ...InvoiceOption) model.Invoice {
	inv := model.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-001",
		Status:        model.InvoiceStatusDraft,
		IssueDate:     "2024-03-05",
		DueDate:       "2024-04-04",
		BusinessInfo:  Business(),
		Client:        Client("c-1", "Acme Corp"),
		LineItems:     SampleItems(),
		PaymentTerms:  model.DefaultPaymentTerms,
	}
	for _, opt := range opts {
		opt(&inv)
	}
	return inv
}
