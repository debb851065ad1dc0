package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"companyviz/internal/repos"
	"companyviz/internal/services"
)

// adminID matches the seeded admin in repos.OpenDB; services attribute
// created records to it.
const adminID = "u-admin"

type svcs struct {
	db        *sqlx.DB
	Companies *services.CompanyService
	Products  *services.ProductService
	Avail     *services.AvailabilityService
	Bulk      *services.BulkImportService
	Chart     *services.ChartService

	CompanyRepo *repos.CompanyRepo
	ProductRepo *repos.ProductRepo
	AvailRepo   *repos.AvailabilityRepo
}

func newSvcs(t *testing.T) *svcs {
	t.Helper()
	db, err := repos.OpenDB(":memory:", false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	companyRepo := repos.NewCompanyRepo(db)
	productRepo := repos.NewProductRepo(db)
	availRepo := repos.NewAvailabilityRepo(db)

	companySvc := services.NewCompanyService(companyRepo, availRepo, userRepo)
	productSvc := services.NewProductService(productRepo, availRepo, userRepo)
	availSvc := services.NewAvailabilityService(availRepo, companyRepo, productRepo)

	return &svcs{
		db:          db,
		Companies:   companySvc,
		Products:    productSvc,
		Avail:       availSvc,
		Bulk:        services.NewBulkImportService(companySvc, productSvc, availSvc, companyRepo, productRepo),
		Chart:       services.NewChartService(companyRepo),
		CompanyRepo: companyRepo,
		ProductRepo: productRepo,
		AvailRepo:   availRepo,
	}
}

func intp(n int) *int { return &n }
