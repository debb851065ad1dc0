package repos

import (
	"companyviz/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CompanyRepo struct{ db *sqlx.DB }

func NewCompanyRepo(db *sqlx.DB) *CompanyRepo { return &CompanyRepo{db: db} }

// CompanyPatch carries the fields of a partial update. Ratings use Opt so
// an explicit null (clear) stays distinct from an omitted field.
type CompanyPatch struct {
	Name                 *string
	EthicsRating         domain.Opt[int]
	PriceRating          domain.Opt[int]
	QualityServiceRating domain.Opt[int]
}

func (r *CompanyRepo) Insert(c domain.Company) error {
	_, err := r.db.Exec(`
		INSERT INTO companies(id,name,ethics_rating,price_rating,quality_service_rating,created_by,created_at)
		VALUES(?,?,?,?,?,?,?)
	`, c.ID, c.Name, c.EthicsRating, c.PriceRating, c.QualityServiceRating, c.CreatedByID, c.CreatedAt)
	return err
}

func (r *CompanyRepo) Get(id string) (domain.Company, error) {
	var c domain.Company
	err := r.db.Get(&c, `
		SELECT id, name, ethics_rating, price_rating, quality_service_rating,
		       created_by, created_at, COALESCE(updated_at,'') AS updated_at
		FROM companies WHERE id = ?
	`, id)
	return c, err
}

// List returns all companies, optionally filtered by a case-insensitive
// name fragment.
func (r *CompanyRepo) List(q string) ([]domain.Company, error) {
	var out []domain.Company
	sql := `
		SELECT id, name, ethics_rating, price_rating, quality_service_rating,
		       created_by, created_at, COALESCE(updated_at,'') AS updated_at
		FROM companies`
	args := []any{}
	if q != "" {
		sql += ` WHERE LOWER(name) LIKE ?`
		args = append(args, "%"+q+"%")
	}
	err := r.db.Select(&out, sql, args...)
	return out, err
}

// ByName looks a company up by exact name, case-insensitive. Used by the
// bulk import path to decide create-vs-reuse.
func (r *CompanyRepo) ByName(name string) (domain.Company, error) {
	var c domain.Company
	err := r.db.Get(&c, `
		SELECT id, name, ethics_rating, price_rating, quality_service_rating,
		       created_by, created_at, COALESCE(updated_at,'') AS updated_at
		FROM companies WHERE LOWER(name) = LOWER(?)
	`, name)
	return c, err
}

// Update applies only the fields present in the patch. Returns the number
// of rows touched so callers can translate 0 into NotFound.
func (r *CompanyRepo) Update(id string, p CompanyPatch) (int64, error) {
	set := "updated_at = ?"
	args := []any{Now()}
	if p.Name != nil {
		set += ", name = ?"
		args = append(args, *p.Name)
	}
	add := func(col string, o domain.Opt[int]) {
		if !o.Present {
			return
		}
		if o.Null {
			set += ", " + col + " = NULL"
			return
		}
		set += ", " + col + " = ?"
		args = append(args, o.Value)
	}
	add("ethics_rating", p.EthicsRating)
	add("price_rating", p.PriceRating)
	add("quality_service_rating", p.QualityServiceRating)

	args = append(args, id)
	res, err := r.db.Exec(`UPDATE companies SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CompanyRepo) Delete(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
