package repos

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string, seedDemo bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// a shared in-memory db only exists on a single connection
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	if seedDemo {
		if err := seedDemoData(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Companies
CREATE TABLE IF NOT EXISTS companies(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  ethics_rating          INTEGER CHECK (ethics_rating          BETWEEN 1 AND 5),
  price_rating           INTEGER CHECK (price_rating           BETWEEN 1 AND 5),
  quality_service_rating INTEGER CHECK (quality_service_rating BETWEEN 1 AND 5),
  created_by TEXT NOT NULL REFERENCES users(id),
  created_at TEXT NOT NULL,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(LOWER(name));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_by TEXT NOT NULL REFERENCES users(id),
  created_at TEXT NOT NULL,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Availability join: one row per (company, product) pair.
-- Company side is RESTRICT (deletes are blocked while rows exist),
-- product side is CASCADE (rows go with the product).
CREATE TABLE IF NOT EXISTS product_availability(
  company_id TEXT NOT NULL REFERENCES companies(id) ON DELETE RESTRICT,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  status TEXT NOT NULL CHECK (status IN ('AVAILABLE','NOT_AVAILABLE','UNKNOWN')),
  updated_at TEXT,
  PRIMARY KEY(company_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_availability_product ON product_availability(product_id);
`
	_, err := db.Exec(schema)
	return err
}

// Now returns timestamps with enough resolution that insertion order is a
// total order; CURRENT_TIMESTAMP only has seconds and ties break listings.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// seedUsers ensures one USER and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-viewer", "viewer@companyviz.test", "Viewer", "USER", "Passw0rd!"),
		mk("u-admin", "admin@companyviz.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// seedDemoData inserts a couple of rated companies and products so the
// dashboard has something to chart on a fresh database. Idempotent.
func seedDemoData(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM companies`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo companies/products/availability")

	ts := Now()
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO companies(id,name,ethics_rating,price_rating,quality_service_rating,created_by,created_at) VALUES
	  ('5f1b2c3d-0000-4000-8000-000000000001','Acme Foods',4,3,4,'u-admin',?),
	  ('5f1b2c3d-0000-4000-8000-000000000002','Globex Retail',2,5,3,'u-admin',?)`, ts, ts)

	tx.MustExec(`INSERT INTO products(id,name,created_by,created_at) VALUES
	  ('6a1b2c3d-0000-4000-8000-000000000001','Oat Milk','u-admin',?),
	  ('6a1b2c3d-0000-4000-8000-000000000002','Fair Trade Coffee','u-admin',?)`, ts, ts)

	tx.MustExec(`INSERT INTO product_availability(company_id,product_id,status,updated_at) VALUES
	  ('5f1b2c3d-0000-4000-8000-000000000001','6a1b2c3d-0000-4000-8000-000000000001','AVAILABLE',?),
	  ('5f1b2c3d-0000-4000-8000-000000000001','6a1b2c3d-0000-4000-8000-000000000002','NOT_AVAILABLE',?),
	  ('5f1b2c3d-0000-4000-8000-000000000002','6a1b2c3d-0000-4000-8000-000000000001','UNKNOWN',?)`, ts, ts, ts)

	return tx.Commit()
}
