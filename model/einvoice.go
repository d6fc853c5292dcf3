package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/biter777/countries"
	"github.com/shopspring/decimal"
	"github.com/speedata/einvoice"
)

const (
	invoiceCurrency = "USD"
	unitPiece       = "C62"
)

// WriteEInvoice writes inv as EN16931 (ZUGFeRD/Factur-X) XML. The flat
// discount becomes a negative zero rated line so that the XML totals match
// Invoice.Totals.
func WriteEInvoice(w io.Writer, inv Invoice) error {
	issued, err := parseDate(inv.IssueDate)
	if err != nil {
		return fmt.Errorf("invoice %s: issue date: %w", inv.InvoiceNumber, err)
	}
	due, err := parseDate(inv.DueDate)
	if err != nil {
		return fmt.Errorf("invoice %s: due date: %w", inv.InvoiceNumber, err)
	}
	b := inv.BusinessInfo

	// use a dot as separator, like the print layout does
	text := strings.Join(filterEmpty(inv.Notes, inv.PaymentTerms), "·")

	zi := einvoice.Invoice{
		InvoiceNumber:       inv.InvoiceNumber,
		InvoiceTypeCode:     380,
		Profile:             einvoice.CProfileEN16931,
		InvoiceDate:         issued,
		InvoiceCurrencyCode: invoiceCurrency,
		TaxCurrencyCode:     invoiceCurrency,
		Notes: []einvoice.Note{{
			Text: text,
		}},
		Seller: einvoice.Party{
			Name:              b.Name,
			VATaxRegistration: b.TaxID,
			PostalAddress:     postalAddress(b.Address),
			DefinedTradeContact: []einvoice.DefinedTradeContact{{
				PersonName: b.Name,
				EMail:      b.Email,
			}},
		},
		Buyer: einvoice.Party{
			Name:          inv.Client.Name,
			PostalAddress: postalAddress(inv.Client.Address),
			DefinedTradeContact: []einvoice.DefinedTradeContact{{
				PersonName: inv.Client.Name,
				EMail:      inv.Client.Email,
			}},
		},
		SpecifiedTradePaymentTerms: []einvoice.SpecifiedTradePaymentTerms{{
			DueDate: due,
		}},
	}

	for i, item := range inv.LineItems {
		category := "S"
		if item.TaxRate == 0 {
			category = "Z"
		}
		zi.InvoiceLines = append(zi.InvoiceLines, einvoice.InvoiceLine{
			LineID:                   fmt.Sprintf("%d", i+1),
			ItemName:                 item.Description,
			BilledQuantity:           decimal.NewFromFloat(item.Quantity),
			BilledQuantityUnit:       unitPiece,
			NetPrice:                 decimal.NewFromFloat(item.UnitPrice),
			TaxRateApplicablePercent: decimal.NewFromFloat(item.TaxRate),
			Total:                    LineAmount(item),
			TaxTypeCode:              "VAT",
			TaxCategoryCode:          category,
		})
	}
	if inv.DiscountAmount > 0 {
		discount := decimal.NewFromFloat(inv.DiscountAmount).Neg()
		zi.InvoiceLines = append(zi.InvoiceLines, einvoice.InvoiceLine{
			LineID:                   fmt.Sprintf("%d", len(inv.LineItems)+1),
			ItemName:                 "Discount",
			BilledQuantity:           decimal.NewFromInt(1),
			BilledQuantityUnit:       unitPiece,
			NetPrice:                 discount,
			TaxRateApplicablePercent: decimal.Zero,
			Total:                    discount,
			TaxTypeCode:              "VAT",
			TaxCategoryCode:          "Z",
		})
	}
	zi.UpdateApplicableTradeTax(map[string]string{})
	zi.UpdateTotals()

	return zi.Write(w)
}

// postalAddress uses the first line of a free text address as street and
// the last line as country.
func postalAddress(address string) *einvoice.PostalAddress {
	lines := filterEmpty(strings.Split(address, "\n")...)
	pa := &einvoice.PostalAddress{CountryID: countryID("")}
	if len(lines) == 0 {
		return pa
	}
	pa.Line1 = lines[0]
	if len(lines) > 2 {
		pa.Line2 = strings.Join(lines[1:len(lines)-1], ", ")
	}
	if len(lines) > 1 {
		pa.CountryID = countryID(lines[len(lines)-1])
	}
	return pa
}

// countryID returns a two letter alpha code for the given country
func countryID(country string) string {
	c := countries.ByName(country)
	if c == countries.Unknown {
		return "US" // default
	}
	return c.Alpha2()
}

func filterEmpty(ss ...string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
