package services

import (
	"database/sql"
	"errors"

	"companyviz/internal/apperr"
	"companyviz/internal/domain"
	"companyviz/internal/repos"
)

type AvailabilityService struct {
	Avail     *repos.AvailabilityRepo
	Companies *repos.CompanyRepo
	Products  *repos.ProductRepo
}

func NewAvailabilityService(avail *repos.AvailabilityRepo, companies *repos.CompanyRepo, products *repos.ProductRepo) *AvailabilityService {
	return &AvailabilityService{Avail: avail, Companies: companies, Products: products}
}

// Set upserts the status for a (company, product) pair. Both referents are
// checked up front so a dangling id surfaces as NotFound instead of a raw
// foreign-key failure. The write itself is a single atomic statement keyed
// on the pair, so concurrent callers cannot create duplicates; the last
// status written wins.
func (s *AvailabilityService) Set(companyID, productID string, status domain.AvailabilityStatus) (domain.ProductAvailability, error) {
	if _, err := s.Companies.Get(companyID); errors.Is(err, sql.ErrNoRows) {
		return domain.ProductAvailability{}, apperr.NotFound("company not found")
	} else if err != nil {
		return domain.ProductAvailability{}, apperr.Internal("could not load company", err)
	}
	if _, err := s.Products.Get(productID); errors.Is(err, sql.ErrNoRows) {
		return domain.ProductAvailability{}, apperr.NotFound("product not found")
	} else if err != nil {
		return domain.ProductAvailability{}, apperr.Internal("could not load product", err)
	}

	if err := s.Avail.Upsert(companyID, productID, status); err != nil {
		return domain.ProductAvailability{}, apperr.Internal("could not save availability", err)
	}
	a, err := s.Avail.Get(companyID, productID)
	if err != nil {
		return domain.ProductAvailability{}, apperr.Internal("could not reload availability", err)
	}
	return a, nil
}

// Get returns the row for the exact pair, or nil when no row exists. A
// missing row is a valid answer here, distinct from an explicit UNKNOWN.
func (s *AvailabilityService) Get(companyID, productID string) (*domain.ProductAvailability, error) {
	a, err := s.Avail.Get(companyID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal("could not load availability", err)
	}
	return &a, nil
}
