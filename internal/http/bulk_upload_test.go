package handlers_test

import (
	"net/http"
	"testing"
)

func TestBulkUpload(t *testing.T) {
	app, _ := newAPIApp(t)

	blob := "company,product,status,ethics,price,quality_service\n" +
		"Acme Foods,Oat Milk,AVAILABLE,4,3,4\n" +
		"Globex,Oat Milk,NOPE\n"

	resp := doJSON(t, app, "POST", "/api/v1/companies/bulk", "sid-admin", blob)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bulk upload: want 200, got %d", resp.StatusCode)
	}
	var report map[string]any
	decode(t, resp, &report)
	if report["imported"] != float64(1) {
		t.Fatalf("want 1 imported, got %v", report)
	}
	if skipped := report["skipped"].([]any); len(skipped) != 1 {
		t.Fatalf("want 1 skipped row, got %v", report)
	}

	// Imported rows are visible through the normal read path, with the
	// same validation/authorization rules as single-record writes.
	resp = doJSON(t, app, "GET", "/api/v1/companies", "sid-user", "")
	var companies []map[string]any
	decode(t, resp, &companies)
	if len(companies) != 1 {
		t.Fatalf("want 1 company after import, got %d", len(companies))
	}
	if companies[0]["name"] != "Acme Foods" {
		t.Fatalf("unexpected company: %v", companies[0]["name"])
	}
	products := companies[0]["products"].([]any)
	if len(products) != 1 {
		t.Fatalf("want 1 availability entry, got %v", products)
	}
}

func TestBulkUpload_EmptyBody(t *testing.T) {
	app, _ := newAPIApp(t)
	resp := doJSON(t, app, "POST", "/api/v1/companies/bulk", "sid-admin", "  ")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for empty upload, got %d", resp.StatusCode)
	}
}
