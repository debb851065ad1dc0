package repos

import (
	"companyviz/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id,name,created_by,created_at)
		VALUES(?,?,?,?)
	`, p.ID, p.Name, p.CreatedByID, p.CreatedAt)
	return err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
		SELECT id, name, created_by, created_at, COALESCE(updated_at,'') AS updated_at
		FROM products WHERE id = ?
	`, id)
	return p, err
}

// List returns all products newest-first. The descending creation order is
// a contract the dashboard relies on, not an accident of the store.
func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT id, name, created_by, created_at, COALESCE(updated_at,'') AS updated_at
		FROM products
		ORDER BY created_at DESC
	`)
	return out, err
}

func (r *ProductRepo) ByName(name string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
		SELECT id, name, created_by, created_at, COALESCE(updated_at,'') AS updated_at
		FROM products WHERE LOWER(name) = LOWER(?)
	`, name)
	return p, err
}

func (r *ProductRepo) UpdateName(id, name string) (int64, error) {
	res, err := r.db.Exec(`UPDATE products SET name = ?, updated_at = ? WHERE id = ?`, name, Now(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepo) Delete(id string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
