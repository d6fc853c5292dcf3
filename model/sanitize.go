package model

import (
	"math"
	"time"
)

// sanitizer turns values decoded from the store into well typed records.
// Every field of the wrong type or out of range falls back to its default.
// The store can be edited by hand or carry an older schema, so none of these
// functions fail.
type sanitizer struct {
	newID func() string
	now   func() time.Time
}

var defaultSanitizer = sanitizer{newID: GenerateID, now: time.Now}

// SanitizeLineItem coerces v into a line item.
func SanitizeLineItem(v any) LineItem { return defaultSanitizer.lineItem(v) }

// SanitizeClient coerces v into a client. A client is never rejected.
func SanitizeClient(v any) Client { return defaultSanitizer.client(v) }

// SanitizeBusinessInfo coerces v into a business profile.
func SanitizeBusinessInfo(v any) BusinessInfo { return defaultSanitizer.businessInfo(v) }

// SanitizeInvoice coerces v into an invoice. ok is false if id or invoice
// number is missing, such records cannot be repaired.
func SanitizeInvoice(v any) (Invoice, bool) { return defaultSanitizer.invoice(v) }

func str(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return def
}

// num returns m[key] if it is a number within [lo, hi].
func num(m map[string]any, key string, def, lo, hi float64) float64 {
	f, ok := m[key].(float64)
	if !ok || f < lo || f > hi {
		return def
	}
	return f
}

const unbounded = math.MaxFloat64

func (s sanitizer) lineItem(v any) LineItem {
	m, ok := v.(map[string]any)
	if !ok {
		return NewLineItem(s.newID())
	}
	id, ok := m["id"].(string)
	if !ok {
		id = s.newID()
	}
	return LineItem{
		ID:          id,
		Description: str(m, "description", ""),
		Quantity:    num(m, "quantity", 1, 0, unbounded),
		UnitPrice:   num(m, "unitPrice", 0, 0, unbounded),
		TaxRate:     num(m, "taxRate", 0, 0, 100),
	}
}

func (s sanitizer) client(v any) Client {
	m, ok := v.(map[string]any)
	if !ok {
		return NewClient(s.newID())
	}
	id, ok := m["id"].(string)
	if !ok {
		id = s.newID()
	}
	return Client{
		ID:      id,
		Name:    str(m, "name", ""),
		Email:   str(m, "email", ""),
		Phone:   str(m, "phone", ""),
		Address: str(m, "address", ""),
	}
}

func (s sanitizer) businessInfo(v any) BusinessInfo {
	def := DefaultBusinessInfo()
	m, ok := v.(map[string]any)
	if !ok {
		return def
	}
	return BusinessInfo{
		Name:                str(m, "name", def.Name),
		Logo:                str(m, "logo", def.Logo),
		Email:               str(m, "email", def.Email),
		Phone:               str(m, "phone", def.Phone),
		Address:             str(m, "address", def.Address),
		TaxID:               str(m, "taxId", def.TaxID),
		DefaultPaymentTerms: str(m, "defaultPaymentTerms", def.DefaultPaymentTerms),
		DefaultNotes:        str(m, "defaultNotes", def.DefaultNotes),
	}
}

func (s sanitizer) invoice(v any) (Invoice, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Invoice{}, false
	}
	id, ok := m["id"].(string)
	if !ok {
		return Invoice{}, false
	}
	number, ok := m["invoiceNumber"].(string)
	if !ok {
		return Invoice{}, false
	}

	status := InvoiceStatus(str(m, "status", ""))
	if !status.Valid() {
		status = InvoiceStatusDraft
	}

	var items []LineItem
	if raw, ok := m["lineItems"].([]any); ok {
		items = make([]LineItem, 0, len(raw))
		for _, it := range raw {
			items = append(items, s.lineItem(it))
		}
	}
	if len(items) == 0 {
		items = []LineItem{NewLineItem(s.newID())}
	}

	now := s.now()
	return Invoice{
		ID:              id,
		InvoiceNumber:   number,
		Status:          status,
		IssueDate:       str(m, "issueDate", today(now)),
		DueDate:         str(m, "dueDate", defaultDueDate(now)),
		BusinessInfo:    s.businessInfo(m["businessInfo"]),
		Client:          s.client(m["client"]),
		LineItems:       items,
		Notes:           str(m, "notes", ""),
		PaymentTerms:    str(m, "paymentTerms", DefaultPaymentTerms),
		ReferenceNumber: str(m, "referenceNumber", ""),
		DiscountAmount:  num(m, "discountAmount", 0, 0, unbounded),
	}, true
}
