package handlers_test

import (
	"net/http"
	"testing"
)

func TestCompanyCreate_RejectsNonIntegerRatings(t *testing.T) {
	app, _ := newAPIApp(t)

	bad := []string{
		`{"name":"Acme","ethicsRating":0}`,
		`{"name":"Acme","ethicsRating":6}`,
		`{"name":"Acme","ethicsRating":2.5}`,
		`{"name":"Acme","ethicsRating":"3"}`,
		`{"name":""}`,
	}
	for _, body := range bad {
		resp := doJSON(t, app, "POST", "/api/v1/companies", "sid-admin", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %s: want 400, got %d", body, resp.StatusCode)
		}
	}

	resp := doJSON(t, app, "POST", "/api/v1/companies", "sid-admin", `{"name":"Acme","ethicsRating":3}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("valid body: want 201, got %d", resp.StatusCode)
	}
}

func TestCompanyGet_InvalidAndMissingID(t *testing.T) {
	app, _ := newAPIApp(t)

	resp := doJSON(t, app, "GET", "/api/v1/companies/not-a-uuid", "sid-user", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed id: want 400, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/api/v1/companies/0a867c56-23fe-4a42-a1ca-b6aeb0b5ebd2", "sid-user", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing id: want 404, got %d", resp.StatusCode)
	}
}

func TestCompanyPatch_PartialUpdate(t *testing.T) {
	app, _ := newAPIApp(t)
	created := createCompany(t, app, `{"name":"Acme","ethicsRating":2,"priceRating":3,"qualityServiceRating":4}`)
	id := created["id"].(string)

	resp := doJSON(t, app, "PATCH", "/api/v1/companies/"+id, "sid-admin", `{"name":"Acme Renamed"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: want 200, got %d", resp.StatusCode)
	}
	var got map[string]any
	decode(t, resp, &got)
	if got["name"] != "Acme Renamed" {
		t.Fatalf("name not updated: %v", got["name"])
	}
	if got["ethicsRating"] != float64(2) || got["priceRating"] != float64(3) || got["qualityServiceRating"] != float64(4) {
		t.Fatalf("omitted ratings changed: %v", got)
	}

	// Explicit null clears; omitted fields still untouched.
	resp = doJSON(t, app, "PATCH", "/api/v1/companies/"+id, "sid-admin", `{"ethicsRating":null}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch null: want 200, got %d", resp.StatusCode)
	}
	decode(t, resp, &got)
	if got["ethicsRating"] != nil {
		t.Fatalf("ethics not cleared: %v", got["ethicsRating"])
	}
	if got["priceRating"] != float64(3) {
		t.Fatalf("price changed: %v", got["priceRating"])
	}

	// The name cannot be cleared.
	resp = doJSON(t, app, "PATCH", "/api/v1/companies/"+id, "sid-admin", `{"name":null}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("null name: want 400, got %d", resp.StatusCode)
	}
}

func TestCompanyDelete_ConflictThenGone(t *testing.T) {
	app, _ := newAPIApp(t)
	company := createCompany(t, app, `{"name":"Acme"}`)
	product := createProduct(t, app, "Widget")
	companyID := company["id"].(string)
	productID := product["id"].(string)

	resp := doJSON(t, app, "PUT", "/api/v1/availability", "sid-admin",
		`{"companyId":"`+companyID+`","productId":"`+productID+`","status":"AVAILABLE"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set availability: want 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "DELETE", "/api/v1/companies/"+companyID, "sid-admin", "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("delete with availability rows: want 409, got %d", resp.StatusCode)
	}

	// Deleting the product clears the pair; the company can go.
	resp = doJSON(t, app, "DELETE", "/api/v1/products/"+productID, "sid-admin", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete product: want 200, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "DELETE", "/api/v1/companies/"+companyID, "sid-admin", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete company: want 204, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/api/v1/companies/"+companyID, "sid-user", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("company should be gone: got %d", resp.StatusCode)
	}
}
