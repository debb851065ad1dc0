package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"companyviz/internal/apperr"
	"companyviz/internal/domain"
	"companyviz/internal/repos"
	"companyviz/internal/validate"
)

type CompanyService struct {
	Companies *repos.CompanyRepo
	Avail     *repos.AvailabilityRepo
	Users     *repos.UserRepo
}

func NewCompanyService(companies *repos.CompanyRepo, avail *repos.AvailabilityRepo, users *repos.UserRepo) *CompanyService {
	return &CompanyService{Companies: companies, Avail: avail, Users: users}
}

// CompanyInput is the create contract: a name plus up to three optional
// ratings. A nil rating means "not rated", never zero.
type CompanyInput struct {
	Name                 string
	EthicsRating         *int
	PriceRating          *int
	QualityServiceRating *int
}

func checkRating(field string, r *int) error {
	if r != nil && !validate.Rating(*r) {
		return apperr.Validation(field, "rating must be an integer between 1 and 5")
	}
	return nil
}

func (s *CompanyService) Create(callerID string, in CompanyInput) (domain.Company, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Company{}, apperr.Validation("name", "company name is required")
	}
	for _, rc := range []struct {
		field string
		val   *int
	}{
		{"ethicsRating", in.EthicsRating},
		{"priceRating", in.PriceRating},
		{"qualityServiceRating", in.QualityServiceRating},
	} {
		if err := checkRating(rc.field, rc.val); err != nil {
			return domain.Company{}, err
		}
	}

	c := domain.Company{
		ID:                   uuid.NewString(),
		Name:                 name,
		EthicsRating:         in.EthicsRating,
		PriceRating:          in.PriceRating,
		QualityServiceRating: in.QualityServiceRating,
		CreatedByID:          callerID,
		CreatedAt:            repos.Now(),
	}
	if err := s.Companies.Insert(c); err != nil {
		return domain.Company{}, apperr.Internal("could not create company", err)
	}
	return c, nil
}

// GetAll returns every company with its availability entries (each carrying
// the related product) and the reduced creator projection.
func (s *CompanyService) GetAll(q string) ([]domain.CompanyDetail, error) {
	companies, err := s.Companies.List(q)
	if err != nil {
		return nil, apperr.Internal("could not list companies", err)
	}
	if len(companies) == 0 {
		return []domain.CompanyDetail{}, nil
	}

	ids := make([]string, len(companies))
	for i, c := range companies {
		ids[i] = c.ID
	}
	entries, err := s.Avail.ListForCompanies(ids)
	if err != nil {
		return nil, apperr.Internal("could not load availability entries", err)
	}
	creators, err := s.creatorRefs(companies)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CompanyDetail, len(companies))
	for i, c := range companies {
		es := entries[c.ID]
		if es == nil {
			es = []domain.CompanyProductEntry{}
		}
		out[i] = domain.CompanyDetail{Company: c, Products: es, CreatedBy: creators[c.CreatedByID]}
	}
	return out, nil
}

func (s *CompanyService) GetByID(id string) (domain.CompanyDetail, error) {
	c, err := s.Companies.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CompanyDetail{}, apperr.NotFound("company not found")
	}
	if err != nil {
		return domain.CompanyDetail{}, apperr.Internal("could not load company", err)
	}
	return s.detail(c)
}

func (s *CompanyService) detail(c domain.Company) (domain.CompanyDetail, error) {
	entries, err := s.Avail.ListForCompanies([]string{c.ID})
	if err != nil {
		return domain.CompanyDetail{}, apperr.Internal("could not load availability entries", err)
	}
	ref, err := s.Users.Ref(c.CreatedByID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.CompanyDetail{}, apperr.Internal("could not load creator", err)
	}
	es := entries[c.ID]
	if es == nil {
		es = []domain.CompanyProductEntry{}
	}
	return domain.CompanyDetail{Company: c, Products: es, CreatedBy: ref}, nil
}

// CompanyPatch mirrors repos.CompanyPatch but is validated here, before any
// store call.
type CompanyPatch = repos.CompanyPatch

func (s *CompanyService) Update(id string, p CompanyPatch) (domain.Company, error) {
	if p.Name != nil {
		name, ok := validate.Name(*p.Name)
		if !ok {
			return domain.Company{}, apperr.Validation("name", "company name is required")
		}
		p.Name = &name
	}
	for _, rc := range []struct {
		field string
		val   domain.Opt[int]
	}{
		{"ethicsRating", p.EthicsRating},
		{"priceRating", p.PriceRating},
		{"qualityServiceRating", p.QualityServiceRating},
	} {
		if rc.val.Set() && !validate.Rating(rc.val.Value) {
			return domain.Company{}, apperr.Validation(rc.field, "rating must be an integer between 1 and 5")
		}
	}

	// Existence first, so a miss is a typed NotFound and never a silent no-op.
	if _, err := s.Companies.Get(id); errors.Is(err, sql.ErrNoRows) {
		return domain.Company{}, apperr.NotFound("company not found")
	} else if err != nil {
		return domain.Company{}, apperr.Internal("could not load company", err)
	}

	n, err := s.Companies.Update(id, p)
	if err != nil {
		return domain.Company{}, apperr.Internal("could not update company", err)
	}
	if n == 0 {
		// Deleted between check and write.
		return domain.Company{}, apperr.NotFound("company not found")
	}
	c, err := s.Companies.Get(id)
	if err != nil {
		return domain.Company{}, apperr.Internal("could not reload company", err)
	}
	return c, nil
}

// Delete removes a company. Companies still referenced by availability rows
// are not deleted; callers get a Conflict and must clear the entries first.
func (s *CompanyService) Delete(id string) error {
	if _, err := s.Companies.Get(id); errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("company not found")
	} else if err != nil {
		return apperr.Internal("could not load company", err)
	}
	n, err := s.Avail.CountForCompany(id)
	if err != nil {
		return apperr.Internal("could not check availability entries", err)
	}
	if n > 0 {
		return apperr.Conflict("company still has availability entries")
	}
	rows, err := s.Companies.Delete(id)
	if err != nil {
		return apperr.Internal("could not delete company", err)
	}
	if rows == 0 {
		return apperr.NotFound("company not found")
	}
	return nil
}

func (s *CompanyService) creatorRefs(companies []domain.Company) (map[string]domain.UserRef, error) {
	refs := map[string]domain.UserRef{}
	for _, c := range companies {
		if _, ok := refs[c.CreatedByID]; ok {
			continue
		}
		ref, err := s.Users.Ref(c.CreatedByID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Internal("could not load creator", err)
		}
		refs[c.CreatedByID] = ref
	}
	return refs, nil
}
