package domain_test

import (
	"encoding/json"
	"testing"

	"companyviz/internal/domain"
)

func TestOptUnmarshal(t *testing.T) {
	var req struct {
		Rating domain.Opt[int]    `json:"rating"`
		Name   domain.Opt[string] `json:"name"`
	}

	// Omitted: not present at all.
	if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.Rating.Present || req.Name.Present {
		t.Fatalf("omitted fields should not be present: %+v", req)
	}

	// Explicit null: present, but carrying nothing.
	if err := json.Unmarshal([]byte(`{"rating": null}`), &req); err != nil {
		t.Fatal(err)
	}
	if !req.Rating.Present || !req.Rating.Null || req.Rating.Set() {
		t.Fatalf("null field mis-decoded: %+v", req.Rating)
	}

	// Value: present and set.
	if err := json.Unmarshal([]byte(`{"rating": 4, "name": "Acme"}`), &req); err != nil {
		t.Fatal(err)
	}
	if !req.Rating.Set() || req.Rating.Value != 4 {
		t.Fatalf("value field mis-decoded: %+v", req.Rating)
	}
	if !req.Name.Set() || req.Name.Value != "Acme" {
		t.Fatalf("string field mis-decoded: %+v", req.Name)
	}

	// Wrong type is an error, not a silent coercion.
	if err := json.Unmarshal([]byte(`{"rating": 2.5}`), &req); err == nil {
		t.Fatal("fractional rating should not decode into an int field")
	}
	if err := json.Unmarshal([]byte(`{"rating": "3"}`), &req); err == nil {
		t.Fatal("string rating should not decode into an int field")
	}
}

func TestOptMarshal(t *testing.T) {
	b, err := json.Marshal(domain.Some(3))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "3" {
		t.Fatalf("want 3, got %s", b)
	}
	b, err = json.Marshal(domain.None[int]())
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Fatalf("want null, got %s", b)
	}
}
