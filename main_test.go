package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/billingcat/invoicedesk/model"
)

func TestParseItem(t *testing.T) {
	tests := []struct {
		in      string
		want    model.LineItem
		wantErr bool
	}{
		{in: "Design", want: model.LineItem{ID: "x", Description: "Design", Quantity: 1}},
		{in: "Design:3", want: model.LineItem{ID: "x", Description: "Design", Quantity: 3}},
		{in: "Design, logo:2:50:10", want: model.LineItem{ID: "x", Description: "Design, logo", Quantity: 2, UnitPrice: 50, TaxRate: 10}},
		{in: "Time: March:1:10:0", want: model.LineItem{ID: "x", Description: "Time: March", Quantity: 1, UnitPrice: 10}},
		{in: "Design:two", wantErr: true},
		{in: "Design:1:-5", wantErr: true},
		{in: "Design:1:5:120", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseItem(tt.in, "x")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseItem = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := `basedir = "` + filepath.ToSlash(dir) + `"
mode = "test"

[servers.test]
database = "file"
dbname = "store.json"
`
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"invoicedesk", "--config", cfgPath}, args...))
	return out.String(), err
}

func TestInvoiceWorkflow(t *testing.T) {
	cfg := writeTestConfig(t)
	if _, err := run(t, cfg, "business", "set", "--name", "Acme Design", "--address", "1 Main Street"); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, cfg, "invoice", "new", "--client", "Acme Corp", "--email", "ap@acme.example",
		"--item", "Design:2:50:10", "--item", "Travel:1:30:0", "--discount", "5")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "INV-001") || !strings.Contains(out, "$135.00") {
		t.Errorf("new: %q", out)
	}

	if _, err = run(t, cfg, "invoice", "status", "INV-001", "paid"); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, cfg, "invoice", "duplicate", "INV-001")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "INV-002") {
		t.Errorf("duplicate: %q", out)
	}

	out, err = run(t, cfg, "invoice", "list", "--status", "draft")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "INV-002") || strings.Contains(out, "INV-001") {
		t.Errorf("list: %q", out)
	}

	out, err = run(t, cfg, "client", "list")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "Acme Corp") != 1 {
		t.Errorf("client registered %d times: %q", strings.Count(out, "Acme Corp"), out)
	}

	out, err = run(t, cfg, "stats")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Collected:   $135.00") {
		t.Errorf("stats: %q", out)
	}

	xml := filepath.Join(t.TempDir(), "inv.xml")
	if _, err = run(t, cfg, "export", "einvoice", "--out", xml, "INV-001"); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(xml); err != nil || fi.Size() == 0 {
		t.Errorf("einvoice not written: %v", err)
	}

	if _, err = run(t, cfg, "invoice", "show", "INV-404"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("show unknown: %v", err)
	}
}

func TestClientUpdate(t *testing.T) {
	cfg := writeTestConfig(t)
	out, err := run(t, cfg, "client", "add", "--name", "Initech", "--phone", "555 0100")
	if err != nil {
		t.Fatal(err)
	}
	open, closing := strings.Index(out, "("), strings.Index(out, ")")
	if open < 0 || closing < open {
		t.Fatalf("add: %q", out)
	}
	id := out[open+1 : closing]

	if _, err = run(t, cfg, "client", "update", "--email", "ap@initech.example", id); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, cfg, "client", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "ap@initech.example") || !strings.Contains(out, "555 0100") {
		t.Errorf("list after update: %q", out)
	}

	if _, err = run(t, cfg, "client", "update", "--email", "nope", id); err == nil {
		t.Error("invalid email accepted")
	}
	if _, err = run(t, cfg, "client", "update", "--name", "X", "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("update unknown: %v", err)
	}
}

func TestInvoiceNewRequiresDescription(t *testing.T) {
	cfg := writeTestConfig(t)
	_, err := run(t, cfg, "invoice", "new", "--client", "Acme")
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestClearNeedsConfirmation(t *testing.T) {
	cfg := writeTestConfig(t)
	if _, err := run(t, cfg, "business", "set", "--name", "Acme Design", "--tax-id", "US1"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, cfg, "clear"); err == nil {
		t.Error("clear without --yes succeeded")
	}
	out, _ := run(t, cfg, "business", "show")
	if !strings.Contains(out, "Acme Design") {
		t.Errorf("profile gone: %q", out)
	}
	if _, err := run(t, cfg, "clear", "--yes"); err != nil {
		t.Fatal(err)
	}
	out, _ = run(t, cfg, "business", "show")
	if strings.Contains(out, "Acme Design") {
		t.Errorf("profile survived: %q", out)
	}
}
