package domain

// AvailabilityStatus enumerates whether a company carries a product.
type AvailabilityStatus string

const (
	StatusAvailable    AvailabilityStatus = "AVAILABLE"
	StatusNotAvailable AvailabilityStatus = "NOT_AVAILABLE"
	StatusUnknown      AvailabilityStatus = "UNKNOWN"
)

type Company struct {
	ID                   string `db:"id" json:"id"`
	Name                 string `db:"name" json:"name"`
	EthicsRating         *int   `db:"ethics_rating" json:"ethicsRating"`
	PriceRating          *int   `db:"price_rating" json:"priceRating"`
	QualityServiceRating *int   `db:"quality_service_rating" json:"qualityServiceRating"`
	CreatedByID          string `db:"created_by" json:"-"`
	CreatedAt            string `db:"created_at" json:"createdAt"`
	UpdatedAt            string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Product struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	CreatedByID string `db:"created_by" json:"-"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
	UpdatedAt   string `db:"updated_at" json:"updatedAt,omitempty"`
}

// ProductAvailability links one company to one product. The (companyId,
// productId) pair is the identity; at most one row exists per pair.
type ProductAvailability struct {
	CompanyID string             `db:"company_id" json:"companyId"`
	ProductID string             `db:"product_id" json:"productId"`
	Status    AvailabilityStatus `db:"status" json:"status"`
	UpdatedAt string             `db:"updated_at" json:"updatedAt,omitempty"`
}

// UserRef is the reduced creator projection exposed on reads.
type UserRef struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

// CompanyProductEntry is one availability row seen from the company side,
// with the related product attached.
type CompanyProductEntry struct {
	ProductAvailability
	Product Product `json:"product"`
}

// CompanyDetail is a company with its full inclusions.
type CompanyDetail struct {
	Company
	Products  []CompanyProductEntry `json:"products"`
	CreatedBy UserRef               `json:"createdBy"`
}

// ProductCompanyEntry is one availability row seen from the product side.
type ProductCompanyEntry struct {
	ProductAvailability
	Company Company `json:"company"`
}

// ProductDetail is a product with its full inclusions.
type ProductDetail struct {
	Product
	Companies []ProductCompanyEntry `json:"companies"`
	CreatedBy UserRef               `json:"createdBy"`
}
