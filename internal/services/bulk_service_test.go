package services_test

import (
	"testing"

	"companyviz/internal/domain"
)

func TestBulkImport_HappyPathAndSkips(t *testing.T) {
	s := newSvcs(t)

	blob := `company,product,status,ethics,price,quality_service
Acme Foods,Oat Milk,AVAILABLE,4,3,4
Acme Foods,Coffee,NOT_AVAILABLE
Globex,Oat Milk,BOGUS_STATUS
Globex,Oat Milk,UNKNOWN,2,,
`
	report, err := s.Bulk.Import(adminID, blob)
	if err != nil {
		t.Fatal(err)
	}
	if report.Imported != 3 {
		t.Fatalf("want 3 imported, got %d (skipped: %+v)", report.Imported, report.Skipped)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Line != 4 {
		t.Fatalf("want line 4 skipped, got %+v", report.Skipped)
	}

	// Acme created once, with the first row's ratings, reused by row two.
	acme, err := s.CompanyRepo.ByName("Acme Foods")
	if err != nil {
		t.Fatal(err)
	}
	if acme.EthicsRating == nil || *acme.EthicsRating != 4 {
		t.Fatalf("ratings not applied at creation: %+v", acme)
	}
	all, err := s.Companies.GetAll("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2 companies (Acme, Globex), got %d", len(all))
	}

	// Globex got only a partial rating row.
	globex, err := s.CompanyRepo.ByName("Globex")
	if err != nil {
		t.Fatal(err)
	}
	if globex.EthicsRating == nil || *globex.EthicsRating != 2 || globex.PriceRating != nil {
		t.Fatalf("partial ratings wrong: %+v", globex)
	}

	// Availability went through the same upsert path.
	milk, err := s.ProductRepo.ByName("Oat Milk")
	if err != nil {
		t.Fatal(err)
	}
	a, err := s.Avail.Get(acme.ID, milk.ID)
	if err != nil {
		t.Fatal(err)
	}
	if a == nil || a.Status != domain.StatusAvailable {
		t.Fatalf("availability not imported: %+v", a)
	}
}

func TestBulkImport_EmptyBlob(t *testing.T) {
	s := newSvcs(t)
	if _, err := s.Bulk.Import(adminID, "  \n "); err == nil {
		t.Fatal("want validation error for empty upload")
	}
}

func TestBulkImport_ShortRowSkipped(t *testing.T) {
	s := newSvcs(t)
	report, err := s.Bulk.Import(adminID, "Acme,Widget\n")
	if err != nil {
		t.Fatal(err)
	}
	if report.Imported != 0 || len(report.Skipped) != 1 {
		t.Fatalf("want one skipped row, got %+v", report)
	}
}
