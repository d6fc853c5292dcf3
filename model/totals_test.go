package model_test

import (
	"slices"
	"testing"

	"github.com/billingcat/invoicedesk/fixtures"
	"github.com/billingcat/invoicedesk/model"
	"github.com/shopspring/decimal"
)

func TestTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []model.LineItem
		discount     float64
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "no items",
			wantSubtotal: "0",
			wantTax:      "0",
			wantTotal:    "0",
		},
		{
			name:         "mixed tax rates with discount",
			items:        fixtures.SampleItems(),
			discount:     5,
			wantSubtotal: "130",
			wantTax:      "10",
			wantTotal:    "135",
		},
		{
			name:         "fractional quantity",
			items:        []model.LineItem{fixtures.Item("a", "Hours", 1.5, 80, 19)},
			wantSubtotal: "120",
			wantTax:      "22.8",
			wantTotal:    "142.8",
		},
		{
			name:         "discount above total is not clamped",
			items:        []model.LineItem{fixtures.Item("a", "Small job", 1, 10, 0)},
			discount:     25,
			wantSubtotal: "10",
			wantTax:      "0",
			wantTotal:    "-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := fixtures.Invoice(fixtures.WithItems(tt.items...), fixtures.WithDiscount(tt.discount))
			got := inv.Totals()
			if want := decimal.RequireFromString(tt.wantSubtotal); !got.Subtotal.Equal(want) {
				t.Errorf("Subtotal = %s, want %s", got.Subtotal, want)
			}
			if want := decimal.RequireFromString(tt.wantTax); !got.Tax.Equal(want) {
				t.Errorf("Tax = %s, want %s", got.Tax, want)
			}
			if want := decimal.RequireFromString(tt.wantTotal); !got.Total.Equal(want) {
				t.Errorf("Total = %s, want %s", got.Total, want)
			}
		})
	}
}

func TestLineAmount(t *testing.T) {
	got := model.LineAmount(fixtures.Item("a", "x", 3, 0.1, 0))
	if want := decimal.RequireFromString("0.3"); !got.Equal(want) {
		t.Errorf("LineAmount = %s, want %s", got, want)
	}
}

func TestTotalsIgnoreLineOrder(t *testing.T) {
	items := fixtures.SampleItems()
	items = append(items, fixtures.Item("li-3", "Hosting", 12, 4.99, 7))
	reversed := slices.Clone(items)
	slices.Reverse(reversed)

	if a, b := model.Subtotal(items), model.Subtotal(reversed); !a.Equal(b) {
		t.Errorf("Subtotal = %s reversed %s", a, b)
	}
	if a, b := model.TaxAmount(items), model.TaxAmount(reversed); !a.Equal(b) {
		t.Errorf("TaxAmount = %s reversed %s", a, b)
	}
	if a, b := model.Total(items, 3), model.Total(reversed, 3); !a.Equal(b) {
		t.Errorf("Total = %s reversed %s", a, b)
	}
}
