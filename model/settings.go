package model

import (
	"encoding/base64"
	"net/http"
)

// BusinessInfo contains the business profile printed on every invoice.
// There is exactly one per store.
type BusinessInfo struct {
	Name                string `json:"name"`
	Logo                string `json:"logo"` // data URL
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	TaxID               string `json:"taxId"`
	DefaultPaymentTerms string `json:"defaultPaymentTerms"`
	DefaultNotes        string `json:"defaultNotes"`
}

// DefaultBusinessInfo is the profile of a fresh installation.
func DefaultBusinessInfo() BusinessInfo {
	return BusinessInfo{
		DefaultPaymentTerms: DefaultPaymentTerms,
	}
}

// paymentTerms returns the terms a new invoice starts with.
func (b BusinessInfo) paymentTerms() string {
	if b.DefaultPaymentTerms != "" {
		return b.DefaultPaymentTerms
	}
	return DefaultPaymentTerms
}

// LogoDataURL encodes an image the way the browser stores an uploaded logo.
func LogoDataURL(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}
