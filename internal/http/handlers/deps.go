package handlers

import (
	"companyviz/internal/repos"
	"companyviz/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	CompanyHandler      *CompanyHandler
	ProductHandler      *ProductHandler
	AvailabilityHandler *AvailabilityHandler
	UploadHandler       *UploadHandler
	ChartHandler        *ChartHandler
	DashboardHandler    *DashboardHandler
	AuthHandler         *AuthHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	userRepo := repos.NewUserRepo(db)
	companyRepo := repos.NewCompanyRepo(db)
	productRepo := repos.NewProductRepo(db)
	availRepo := repos.NewAvailabilityRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	companySvc := services.NewCompanyService(companyRepo, availRepo, userRepo)
	productSvc := services.NewProductService(productRepo, availRepo, userRepo)
	availSvc := services.NewAvailabilityService(availRepo, companyRepo, productRepo)
	bulkSvc := services.NewBulkImportService(companySvc, productSvc, availSvc, companyRepo, productRepo)
	chartSvc := services.NewChartService(companyRepo)

	return &Deps{
		Auth:                authSvc,
		CompanyHandler:      &CompanyHandler{Companies: companySvc},
		ProductHandler:      &ProductHandler{Products: productSvc},
		AvailabilityHandler: &AvailabilityHandler{Avail: availSvc},
		UploadHandler:       &UploadHandler{Bulk: bulkSvc},
		ChartHandler:        &ChartHandler{Chart: chartSvc},
		DashboardHandler:    &DashboardHandler{},
		AuthHandler:         &AuthHandler{Auth: authSvc},
	}
}
