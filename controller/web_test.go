package controller

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/billingcat/invoicedesk/model"
	"github.com/labstack/echo/v4"
)

const indexHTML = "<!doctype html><title>invoicedesk</title>"

func setupTestServer(t *testing.T, withIndex bool) *echo.Echo {
	t.Helper()
	dir := t.TempDir()
	if withIndex {
		if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(indexHTML), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "assets"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := model.DefaultConfig()
	cfg.Public = dir
	return newServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHealthz(t *testing.T) {
	e := setupTestServer(t, true)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("JSON unmarshal error: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestSPA(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
		wantIndex  bool
	}{
		{"root", "/", http.StatusOK, indexHTML, true},
		{"client route", "/invoices/inv-1/edit", http.StatusOK, indexHTML, true},
		{"trailing slash", "/clients/", http.StatusOK, indexHTML, true},
		{"existing asset", "/assets/app.js", http.StatusOK, "console.log(1)", false},
		{"missing asset", "/assets/missing.js", http.StatusNotFound, "NOT_FOUND", false},
		{"missing font", "/fonts/inter.woff2", http.StatusNotFound, "NOT_FOUND", false},
		{"api", "/api/invoices", http.StatusNotFound, "NOT_FOUND", false},
		{"traversal", "/../../etc/passwd", http.StatusOK, indexHTML, true},
	}
	e := setupTestServer(t, true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
			cc := rec.Header().Get("Cache-Control")
			if tt.wantIndex && cc != "no-cache, no-store, must-revalidate" {
				t.Errorf("Cache-Control = %q", cc)
			}
			if !tt.wantIndex && strings.Contains(cc, "no-store") {
				t.Errorf("asset served with Cache-Control %q", cc)
			}
		})
	}
}

func TestSPAWithoutIndex(t *testing.T) {
	e := setupTestServer(t, false)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("JSON unmarshal error: %v", err)
	}
	if body["error_code"] != "NOT_FOUND" || body["error"] != "Not found" {
		t.Errorf("body = %v", body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	e := setupTestServer(t, true)
	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHTTPStatusToCode(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{400, "INVALID_INPUT"},
		{404, "NOT_FOUND"},
		{418, "ERROR"},
		{503, "INTERNAL"},
	}
	for _, tt := range tests {
		if got := httpStatusToCode(tt.status); got != tt.want {
			t.Errorf("httpStatusToCode(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
