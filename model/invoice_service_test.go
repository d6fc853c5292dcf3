package model_test

import (
	"reflect"
	"testing"

	"github.com/billingcat/invoicedesk/fixtures"
	"github.com/billingcat/invoicedesk/model"
)

func sampleInvoices() []model.Invoice {
	return []model.Invoice{
		fixtures.Invoice(
			fixtures.WithID("a"), fixtures.WithNumber("INV-002"),
			fixtures.WithIssueDate("2024-02-01"),
			fixtures.WithStatus(model.InvoiceStatusSent),
			fixtures.WithClient(model.Client{ID: "c1", Name: "Acme Corp", Email: "ap@acme.example"}),
		),
		fixtures.Invoice(
			fixtures.WithID("b"), fixtures.WithNumber("INV-001"),
			fixtures.WithIssueDate("2024-01-15"),
			fixtures.WithStatus(model.InvoiceStatusPaid),
			fixtures.WithClient(model.Client{ID: "c2", Name: "Globex", Email: "finance@globex.example"}),
			fixtures.WithItems(fixtures.Item("x", "Big job", 1, 1000, 0)),
		),
		fixtures.Invoice(
			fixtures.WithID("c"), fixtures.WithNumber("INV-003"),
			fixtures.WithIssueDate("2024-03-01"),
			fixtures.WithClient(model.Client{ID: "c3", Name: "Initech"}),
			fixtures.WithItems(fixtures.Item("y", "Small job", 1, 10, 0)),
		),
	}
}

func ids(invoices []model.Invoice) []string {
	out := make([]string, len(invoices))
	for i, inv := range invoices {
		out[i] = inv.ID
	}
	return out
}

func TestSearchInvoices(t *testing.T) {
	invoices := sampleInvoices()
	if got := model.SearchInvoices(invoices, ""); !reflect.DeepEqual(got, invoices) {
		t.Error("empty query changed the list")
	}
	if got := model.SearchInvoices(invoices, "   "); !reflect.DeepEqual(got, invoices) {
		t.Error("blank query changed the list")
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"acme", []string{"a"}},
		{"INV-00", []string{"a", "b", "c"}},
		{"inv-003", []string{"c"}},
		{"GLOBEX.example", []string{"b"}},
		{"nobody", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := ids(model.SearchInvoices(invoices, tt.query))
			if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("SearchInvoices(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterInvoicesByStatus(t *testing.T) {
	invoices := sampleInvoices()
	if got := model.FilterInvoicesByStatus(invoices, model.InvoiceStatusAll); len(got) != 3 {
		t.Errorf("all = %v", ids(got))
	}
	if got := ids(model.FilterInvoicesByStatus(invoices, model.InvoiceStatusPaid)); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("paid = %v", got)
	}
	if got := model.FilterInvoicesByStatus(invoices, model.InvoiceStatusOverdue); len(got) != 0 {
		t.Errorf("overdue = %v", ids(got))
	}
}

func TestFilterInvoicesByDateRange(t *testing.T) {
	invoices := append(sampleInvoices(), fixtures.Invoice(fixtures.WithID("d"), fixtures.WithIssueDate("garbage")))
	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{"open", "", "", []string{"a", "b", "c", "d"}},
		{"inclusive bounds", "2024-01-15", "2024-02-01", []string{"a", "b", "d"}},
		{"from only", "2024-02-02", "", []string{"c", "d"}},
		{"to only", "", "2024-01-31", []string{"b", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(model.FilterInvoicesByDateRange(invoices, tt.start, tt.end))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortInvoices(t *testing.T) {
	invoices := sampleInvoices()
	tests := []struct {
		sortBy, order string
		want          []string
	}{
		{model.SortByDate, model.OrderDesc, []string{"c", "a", "b"}},
		{model.SortByDate, model.OrderAsc, []string{"b", "a", "c"}},
		{model.SortByNumber, model.OrderAsc, []string{"b", "a", "c"}},
		{model.SortByAmount, model.OrderDesc, []string{"b", "a", "c"}},
		{model.SortByAmount, model.OrderAsc, []string{"c", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy+"/"+tt.order, func(t *testing.T) {
			got := ids(model.SortInvoices(invoices, tt.sortBy, tt.order))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
	if got := ids(invoices); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("input reordered: %v", got)
	}
}

func TestListInvoices(t *testing.T) {
	got := ids(model.ListInvoices(sampleInvoices(), model.InvoiceListQuery{}))
	if !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Errorf("default = %v", got)
	}
	got = ids(model.ListInvoices(sampleInvoices(), model.InvoiceListQuery{
		Search: "inv", Status: model.InvoiceStatusDraft, Sort: model.SortByNumber, Order: model.OrderAsc,
	}))
	if !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("draft = %v", got)
	}
}

func TestComputeStats(t *testing.T) {
	st := model.ComputeStats(sampleInvoices())
	if st.Total != 3 || st.Draft != 1 || st.Sent != 1 || st.Paid != 1 || st.Overdue != 0 {
		t.Errorf("counts = %+v", st)
	}
	if model.FormatCurrency(st.Outstanding) != "$140.00" {
		t.Errorf("Outstanding = %s", st.Outstanding)
	}
	if model.FormatCurrency(st.Collected) != "$1,000.00" {
		t.Errorf("Collected = %s", st.Collected)
	}
}

func TestSortInvoicesStable(t *testing.T) {
	var invoices []model.Invoice
	for _, id := range []string{"a", "b", "c"} {
		invoices = append(invoices, fixtures.Invoice(fixtures.WithID(id), fixtures.WithIssueDate("2024-02-01")))
	}
	for _, sortBy := range []string{model.SortByDate, model.SortByAmount, model.SortByNumber} {
		for _, order := range []string{model.OrderAsc, model.OrderDesc} {
			t.Run(sortBy+"/"+order, func(t *testing.T) {
				got := ids(model.SortInvoices(invoices, sortBy, order))
				if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
					t.Errorf("equal keys reordered: %v", got)
				}
			})
		}
	}
}
