package model_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/billingcat/invoicedesk/fixtures"
	"github.com/billingcat/invoicedesk/model"
)

// failingKV returns err from every Set once armed.
type failingKV struct {
	*model.MemoryKV
	err error
}

func (f *failingKV) Set(key, value string) error {
	if f.err != nil {
		return f.err
	}
	return f.MemoryKV.Set(key, value)
}

func TestStorageEmpty(t *testing.T) {
	st := model.NewStorage(model.NewMemoryKV())
	invoices, err := st.LoadInvoices()
	if err != nil || invoices == nil || len(invoices) != 0 {
		t.Errorf("LoadInvoices = %v, %v; want empty slice", invoices, err)
	}
	clients, err := st.LoadClients()
	if err != nil || clients == nil || len(clients) != 0 {
		t.Errorf("LoadClients = %v, %v; want empty slice", clients, err)
	}
	info, err := st.LoadBusinessInfo()
	if err != nil || info != nil {
		t.Errorf("LoadBusinessInfo = %v, %v; want nil", info, err)
	}
}

func TestStorageCorruptValues(t *testing.T) {
	kv := model.NewMemoryKV()
	kv.Set(model.KeyInvoices, "{not json")
	kv.Set(model.KeyClients, `{"an":"object"}`)
	st := model.NewStorage(kv)

	invoices, err := st.LoadInvoices()
	if err != nil || len(invoices) != 0 {
		t.Errorf("LoadInvoices = %v, %v", invoices, err)
	}
	clients, err := st.LoadClients()
	if err != nil || len(clients) != 0 {
		t.Errorf("LoadClients = %v, %v", clients, err)
	}
}

func TestStorageDropsBrokenInvoices(t *testing.T) {
	kv := model.NewMemoryKV()
	kv.Set(model.KeyInvoices, `[{"id":"a","invoiceNumber":"INV-001"},{"id":"b"},42,{"id":"c","invoiceNumber":"INV-003"}]`)
	invoices, err := model.NewStorage(kv).LoadInvoices()
	if err != nil {
		t.Fatal(err)
	}
	if len(invoices) != 2 || invoices[0].ID != "a" || invoices[1].ID != "c" {
		t.Errorf("LoadInvoices = %+v", invoices)
	}
}

func TestStorageRoundTrip(t *testing.T) {
	st := model.NewStorage(model.NewMemoryKV())
	invoices := []model.Invoice{
		fixtures.Invoice(),
		fixtures.Invoice(fixtures.WithID("inv-2"), fixtures.WithNumber("INV-002")),
	}
	if err := st.SaveInvoices(invoices); err != nil {
		t.Fatal(err)
	}
	got, err := st.LoadInvoices()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, invoices) {
		t.Errorf("LoadInvoices\n got %+v\nwant %+v", got, invoices)
	}

	info := fixtures.Business()
	if err = st.SaveBusinessInfo(info); err != nil {
		t.Fatal(err)
	}
	gotInfo, err := st.LoadBusinessInfo()
	if err != nil || gotInfo == nil || *gotInfo != info {
		t.Errorf("LoadBusinessInfo = %+v, %v", gotInfo, err)
	}
}

func TestStorageSaveError(t *testing.T) {
	boom := errors.New("quota exceeded")
	st := model.NewStorage(&failingKV{MemoryKV: model.NewMemoryKV(), err: boom})
	if err := st.SaveClients(nil); !errors.Is(err, boom) {
		t.Errorf("SaveClients err = %v, want %v", err, boom)
	}
}

func TestStorageClear(t *testing.T) {
	kv := model.NewMemoryKV()
	st := model.NewStorage(kv)
	st.SaveInvoices([]model.Invoice{fixtures.Invoice()})
	kv.Set(model.KeyInvoiceCounter, "4")
	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{model.KeyInvoices, model.KeyInvoiceCounter} {
		if _, ok, _ := kv.Get(key); ok {
			t.Errorf("%s still present", key)
		}
	}
}
