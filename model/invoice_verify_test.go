package model_test

import (
	"testing"

	"github.com/billingcat/invoicedesk/fixtures"
	"github.com/billingcat/invoicedesk/model"
)

func TestVerifyInvoice(t *testing.T) {
	complete := fixtures.Client("c-1", "Acme Corp")
	complete.Address = "2 Side Street\nSpringfield"

	tests := []struct {
		name       string
		inv        model.Invoice
		wantErrors bool
		wantCount  int
	}{
		{"complete", fixtures.Invoice(fixtures.WithClient(complete)), false, 0},
		{"client without address", fixtures.Invoice(), false, 1},
		{"empty description", fixtures.Invoice(fixtures.WithClient(complete), fixtures.WithItems(fixtures.Item("a", " ", 1, 1, 0))), true, 1},
		{"negative total", fixtures.Invoice(fixtures.WithClient(complete), fixtures.WithDiscount(1000)), true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := model.VerifyInvoice(tt.inv)
			if len(problems) != tt.wantCount {
				t.Errorf("problems = %+v, want %d", problems, tt.wantCount)
			}
			if got := model.HasErrors(problems); got != tt.wantErrors {
				t.Errorf("HasErrors = %v, want %v", got, tt.wantErrors)
			}
		})
	}
}
