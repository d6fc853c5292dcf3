package model

import (
	"encoding/json"
	"fmt"
)

// Keys of the persisted collections.
const (
	KeyInvoices       = "invoices"
	KeyClients        = "clients"
	KeyBusinessInfo   = "businessInfo"
	KeyInvoiceCounter = "invoiceCounter"
)

// Storage reads and writes the collections as JSON documents. Reads pass
// through the sanitizers, writes always replace a whole collection.
type Storage struct {
	kv KV
	s  sanitizer
}

// NewStorage wraps kv.
func NewStorage(kv KV) *Storage {
	return &Storage{kv: kv, s: defaultSanitizer}
}

// KV returns the underlying store.
func (st *Storage) KV() KV { return st.kv }

// load decodes the value of key. Absent or undecodable values give ok=false.
// Only a failing store is an error.
func (st *Storage) load(key string) (v any, ok bool, err error) {
	raw, found, err := st.kv.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	if !found || raw == "" {
		return nil, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false, nil
	}
	return v, true, nil
}

func (st *Storage) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err = st.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// LoadInvoices returns the stored invoices in their stored order. Records
// without id or invoice number are dropped.
func (st *Storage) LoadInvoices() ([]Invoice, error) {
	v, ok, err := st.load(KeyInvoices)
	if err != nil || !ok {
		return []Invoice{}, err
	}
	raw, ok := v.([]any)
	if !ok {
		return []Invoice{}, nil
	}
	invoices := make([]Invoice, 0, len(raw))
	for _, r := range raw {
		if inv, ok := st.s.invoice(r); ok {
			invoices = append(invoices, inv)
		}
	}
	return invoices, nil
}

// SaveInvoices replaces the stored invoice list.
func (st *Storage) SaveInvoices(invoices []Invoice) error {
	if invoices == nil {
		invoices = []Invoice{}
	}
	return st.save(KeyInvoices, invoices)
}

// LoadClients returns the stored clients. Broken fields get defaults, no
// client is dropped.
func (st *Storage) LoadClients() ([]Client, error) {
	v, ok, err := st.load(KeyClients)
	if err != nil || !ok {
		return []Client{}, err
	}
	raw, ok := v.([]any)
	if !ok {
		return []Client{}, nil
	}
	clients := make([]Client, len(raw))
	for i, r := range raw {
		clients[i] = st.s.client(r)
	}
	return clients, nil
}

// SaveClients replaces the stored client list.
func (st *Storage) SaveClients(clients []Client) error {
	if clients == nil {
		clients = []Client{}
	}
	return st.save(KeyClients, clients)
}

// LoadBusinessInfo returns nil if no profile is stored. The caller
// substitutes DefaultBusinessInfo.
func (st *Storage) LoadBusinessInfo() (*BusinessInfo, error) {
	v, ok, err := st.load(KeyBusinessInfo)
	if err != nil || !ok {
		return nil, err
	}
	info := st.s.businessInfo(v)
	return &info, nil
}

// SaveBusinessInfo replaces the stored profile.
func (st *Storage) SaveBusinessInfo(info BusinessInfo) error {
	return st.save(KeyBusinessInfo, info)
}

// Clear removes all collections and the invoice counter.
func (st *Storage) Clear() error {
	if err := st.kv.Clear(); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}
