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

type ProductService struct {
	Products *repos.ProductRepo
	Avail    *repos.AvailabilityRepo
	Users    *repos.UserRepo
}

func NewProductService(products *repos.ProductRepo, avail *repos.AvailabilityRepo, users *repos.UserRepo) *ProductService {
	return &ProductService{Products: products, Avail: avail, Users: users}
}

func (s *ProductService) Create(callerID, name string) (domain.Product, error) {
	name, ok := validate.Name(name)
	if !ok {
		return domain.Product{}, apperr.Validation("name", "product name is required")
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        name,
		CreatedByID: callerID,
		CreatedAt:   repos.Now(),
	}
	if err := s.Products.Insert(p); err != nil {
		return domain.Product{}, apperr.Internal("could not create product", err)
	}
	return p, nil
}

// GetAll lists products newest-first with company inclusions and the
// reduced creator projection.
func (s *ProductService) GetAll() ([]domain.ProductDetail, error) {
	products, err := s.Products.List()
	if err != nil {
		return nil, apperr.Internal("could not list products", err)
	}
	if len(products) == 0 {
		return []domain.ProductDetail{}, nil
	}

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	entries, err := s.Avail.ListForProducts(ids)
	if err != nil {
		return nil, apperr.Internal("could not load availability entries", err)
	}

	refs := map[string]domain.UserRef{}
	out := make([]domain.ProductDetail, len(products))
	for i, p := range products {
		if _, ok := refs[p.CreatedByID]; !ok {
			ref, err := s.Users.Ref(p.CreatedByID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, apperr.Internal("could not load creator", err)
			}
			refs[p.CreatedByID] = ref
		}
		es := entries[p.ID]
		if es == nil {
			es = []domain.ProductCompanyEntry{}
		}
		out[i] = domain.ProductDetail{Product: p, Companies: es, CreatedBy: refs[p.CreatedByID]}
	}
	return out, nil
}

func (s *ProductService) GetByID(id string) (domain.ProductDetail, error) {
	p, err := s.Products.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ProductDetail{}, apperr.NotFound("product not found")
	}
	if err != nil {
		return domain.ProductDetail{}, apperr.Internal("could not load product", err)
	}
	return s.detail(p)
}

func (s *ProductService) detail(p domain.Product) (domain.ProductDetail, error) {
	entries, err := s.Avail.ListForProducts([]string{p.ID})
	if err != nil {
		return domain.ProductDetail{}, apperr.Internal("could not load availability entries", err)
	}
	ref, err := s.Users.Ref(p.CreatedByID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.ProductDetail{}, apperr.Internal("could not load creator", err)
	}
	es := entries[p.ID]
	if es == nil {
		es = []domain.ProductCompanyEntry{}
	}
	return domain.ProductDetail{Product: p, Companies: es, CreatedBy: ref}, nil
}

func (s *ProductService) Update(id string, name *string) (domain.Product, error) {
	if _, err := s.Products.Get(id); errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.NotFound("product not found")
	} else if err != nil {
		return domain.Product{}, apperr.Internal("could not load product", err)
	}
	if name != nil {
		n, ok := validate.Name(*name)
		if !ok {
			return domain.Product{}, apperr.Validation("name", "product name is required")
		}
		if _, err := s.Products.UpdateName(id, n); err != nil {
			return domain.Product{}, apperr.Internal("could not update product", err)
		}
	}
	p, err := s.Products.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.NotFound("product not found")
	}
	if err != nil {
		return domain.Product{}, apperr.Internal("could not reload product", err)
	}
	return p, nil
}

// Delete removes the product and its availability rows, returning what was
// removed so callers can show it.
func (s *ProductService) Delete(id string) (domain.ProductDetail, error) {
	d, err := s.GetByID(id)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	if err := s.Avail.DeleteForProduct(id); err != nil {
		return domain.ProductDetail{}, apperr.Internal("could not delete availability entries", err)
	}
	rows, err := s.Products.Delete(id)
	if err != nil {
		return domain.ProductDetail{}, apperr.Internal("could not delete product", err)
	}
	if rows == 0 {
		return domain.ProductDetail{}, apperr.NotFound("product not found")
	}
	return d, nil
}
