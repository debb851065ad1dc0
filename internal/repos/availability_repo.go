package repos

import (
	"companyviz/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AvailabilityRepo struct{ db *sqlx.DB }

func NewAvailabilityRepo(db *sqlx.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// Upsert writes the status for a (company, product) pair in one statement.
// The primary key on the pair makes the create-or-update atomic; two
// concurrent calls cannot both insert.
func (r *AvailabilityRepo) Upsert(companyID, productID string, status domain.AvailabilityStatus) error {
	_, err := r.db.Exec(`
		INSERT INTO product_availability(company_id, product_id, status, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(company_id, product_id) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at
	`, companyID, productID, status, Now())
	return err
}

// Get returns the row for the exact pair; sql.ErrNoRows when absent.
func (r *AvailabilityRepo) Get(companyID, productID string) (domain.ProductAvailability, error) {
	var a domain.ProductAvailability
	err := r.db.Get(&a, `
		SELECT company_id, product_id, status, COALESCE(updated_at,'') AS updated_at
		FROM product_availability
		WHERE company_id = ? AND product_id = ?
	`, companyID, productID)
	return a, err
}

// companyEntryRow flattens an availability row joined with its product.
type companyEntryRow struct {
	CompanyID        string `db:"company_id"`
	ProductID        string `db:"product_id"`
	Status           string `db:"status"`
	UpdatedAt        string `db:"updated_at"`
	ProductName      string `db:"product_name"`
	ProductCreatedBy string `db:"product_created_by"`
	ProductCreatedAt string `db:"product_created_at"`
}

// ListForCompanies returns, grouped by company id, every availability entry
// with its product attached. An empty filter means all companies.
func (r *AvailabilityRepo) ListForCompanies(companyIDs []string) (map[string][]domain.CompanyProductEntry, error) {
	sql := `
		SELECT a.company_id, a.product_id, a.status, COALESCE(a.updated_at,'') AS updated_at,
		       p.name AS product_name, p.created_by AS product_created_by, p.created_at AS product_created_at
		FROM product_availability a
		JOIN products p ON p.id = a.product_id`
	args := []any{}
	if len(companyIDs) > 0 {
		q, inArgs, err := sqlx.In(sql+` WHERE a.company_id IN (?)`, companyIDs)
		if err != nil {
			return nil, err
		}
		sql, args = q, inArgs
	}

	var rows []companyEntryRow
	if err := r.db.Select(&rows, sql, args...); err != nil {
		return nil, err
	}

	out := make(map[string][]domain.CompanyProductEntry, len(rows))
	for _, row := range rows {
		out[row.CompanyID] = append(out[row.CompanyID], domain.CompanyProductEntry{
			ProductAvailability: domain.ProductAvailability{
				CompanyID: row.CompanyID,
				ProductID: row.ProductID,
				Status:    domain.AvailabilityStatus(row.Status),
				UpdatedAt: row.UpdatedAt,
			},
			Product: domain.Product{
				ID:          row.ProductID,
				Name:        row.ProductName,
				CreatedByID: row.ProductCreatedBy,
				CreatedAt:   row.ProductCreatedAt,
			},
		})
	}
	return out, nil
}

type productEntryRow struct {
	CompanyID            string `db:"company_id"`
	ProductID            string `db:"product_id"`
	Status               string `db:"status"`
	UpdatedAt            string `db:"updated_at"`
	CompanyName          string `db:"company_name"`
	EthicsRating         *int   `db:"ethics_rating"`
	PriceRating          *int   `db:"price_rating"`
	QualityServiceRating *int   `db:"quality_service_rating"`
	CompanyCreatedBy     string `db:"company_created_by"`
	CompanyCreatedAt     string `db:"company_created_at"`
}

// ListForProducts mirrors ListForCompanies from the product side.
func (r *AvailabilityRepo) ListForProducts(productIDs []string) (map[string][]domain.ProductCompanyEntry, error) {
	sql := `
		SELECT a.company_id, a.product_id, a.status, COALESCE(a.updated_at,'') AS updated_at,
		       c.name AS company_name, c.ethics_rating, c.price_rating, c.quality_service_rating,
		       c.created_by AS company_created_by, c.created_at AS company_created_at
		FROM product_availability a
		JOIN companies c ON c.id = a.company_id`
	args := []any{}
	if len(productIDs) > 0 {
		q, inArgs, err := sqlx.In(sql+` WHERE a.product_id IN (?)`, productIDs)
		if err != nil {
			return nil, err
		}
		sql, args = q, inArgs
	}

	var rows []productEntryRow
	if err := r.db.Select(&rows, sql, args...); err != nil {
		return nil, err
	}

	out := make(map[string][]domain.ProductCompanyEntry, len(rows))
	for _, row := range rows {
		out[row.ProductID] = append(out[row.ProductID], domain.ProductCompanyEntry{
			ProductAvailability: domain.ProductAvailability{
				CompanyID: row.CompanyID,
				ProductID: row.ProductID,
				Status:    domain.AvailabilityStatus(row.Status),
				UpdatedAt: row.UpdatedAt,
			},
			Company: domain.Company{
				ID:                   row.CompanyID,
				Name:                 row.CompanyName,
				EthicsRating:         row.EthicsRating,
				PriceRating:          row.PriceRating,
				QualityServiceRating: row.QualityServiceRating,
				CreatedByID:          row.CompanyCreatedBy,
				CreatedAt:            row.CompanyCreatedAt,
			},
		})
	}
	return out, nil
}

// CountForCompany backs the delete policy: companies with availability rows
// cannot be removed.
func (r *AvailabilityRepo) CountForCompany(companyID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM product_availability WHERE company_id = ?`, companyID)
	return n, err
}

// DeleteForProduct removes every pair referencing the product; part of
// product deletion.
func (r *AvailabilityRepo) DeleteForProduct(productID string) error {
	_, err := r.db.Exec(`DELETE FROM product_availability WHERE product_id = ?`, productID)
	return err
}
