package services

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"companyviz/internal/apperr"
	"companyviz/internal/domain"
	"companyviz/internal/repos"
	"companyviz/internal/validate"
)

// BulkImportService turns an uploaded CSV blob into ordinary create/upsert
// calls. Every row goes through the same company/product/availability
// services the single-record API uses, so validation rules apply uniformly
// and nothing bypasses them.
type BulkImportService struct {
	Companies   *CompanyService
	Products    *ProductService
	Avail       *AvailabilityService
	CompanyRepo *repos.CompanyRepo
	ProductRepo *repos.ProductRepo
}

func NewBulkImportService(companies *CompanyService, products *ProductService, avail *AvailabilityService,
	companyRepo *repos.CompanyRepo, productRepo *repos.ProductRepo) *BulkImportService {
	return &BulkImportService{
		Companies: companies, Products: products, Avail: avail,
		CompanyRepo: companyRepo, ProductRepo: productRepo,
	}
}

type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type ImportReport struct {
	Imported int          `json:"imported"`
	Skipped  []SkippedRow `json:"skipped"`
}

// Expected columns: company, product, status[, ethics, price, quality_service].
// A header row starting with "company" is skipped. Malformed rows are
// reported per line and do not abort the import.
func (s *BulkImportService) Import(callerID, blob string) (ImportReport, error) {
	if strings.TrimSpace(blob) == "" {
		return ImportReport{}, apperr.Validation("data", "upload is empty")
	}

	r := csv.NewReader(strings.NewReader(blob))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	report := ImportReport{Skipped: []SkippedRow{}}
	line := 0
	for {
		rec, err := r.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: "unparseable row"})
			continue
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "company") {
			continue // header
		}
		if isBlank(rec) {
			continue
		}
		if err := s.importRow(callerID, rec); err != nil {
			report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: errReason(err)})
			continue
		}
		report.Imported++
	}
	return report, nil
}

func (s *BulkImportService) importRow(callerID string, rec []string) error {
	if len(rec) < 3 {
		return apperr.Validation("row", "need at least company, product, status columns")
	}
	companyName := strings.TrimSpace(rec[0])
	productName := strings.TrimSpace(rec[1])
	status, ok := validate.Status(rec[2])
	if !ok {
		return apperr.Validation("status", "status must be AVAILABLE, NOT_AVAILABLE or UNKNOWN")
	}

	ratings := [3]*int{}
	for i := 0; i < 3 && 3+i < len(rec); i++ {
		cell := strings.TrimSpace(rec[3+i])
		if cell == "" {
			continue
		}
		n, err := strconv.Atoi(cell)
		if err != nil {
			return apperr.Validation("rating", fmt.Sprintf("%q is not an integer rating", cell))
		}
		v := n
		ratings[i] = &v
	}

	company, err := s.ensureCompany(callerID, companyName, ratings)
	if err != nil {
		return err
	}
	product, err := s.ensureProduct(callerID, productName)
	if err != nil {
		return err
	}
	_, err = s.Avail.Set(company.ID, product.ID, status)
	return err
}

func (s *BulkImportService) ensureCompany(callerID, name string, ratings [3]*int) (domain.Company, error) {
	c, err := s.CompanyRepo.ByName(name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Company{}, apperr.Internal("could not look up company", err)
	}
	return s.Companies.Create(callerID, CompanyInput{
		Name:                 name,
		EthicsRating:         ratings[0],
		PriceRating:          ratings[1],
		QualityServiceRating: ratings[2],
	})
}

func (s *BulkImportService) ensureProduct(callerID, name string) (domain.Product, error) {
	p, err := s.ProductRepo.ByName(name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.Internal("could not look up product", err)
	}
	return s.Products.Create(callerID, name)
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func errReason(err error) string {
	if e, ok := apperr.From(err); ok {
		if e.Field != "" {
			return e.Field + ": " + e.Message
		}
		return e.Message
	}
	return err.Error()
}
