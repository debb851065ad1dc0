package services

import (
	"companyviz/internal/apperr"
	"companyviz/internal/domain"
	"companyviz/internal/repos"
)

// Ratings live on a fixed [0,5] axis; bar widths are linear in that domain.
const chartRatingMax = 5

var chartMetrics = []struct {
	Metric string
	Color  string
	Value  func(domain.Company) *int
}{
	{"ethicsRating", "#4CAF50", func(c domain.Company) *int { return c.EthicsRating }},
	{"priceRating", "#2196F3", func(c domain.Company) *int { return c.PriceRating }},
	{"qualityServiceRating", "#FFC107", func(c domain.Company) *int { return c.QualityServiceRating }},
}

type ChartBar struct {
	Metric string  `json:"metric"`
	Value  *int    `json:"value"`
	Width  float64 `json:"width"`
	Color  string  `json:"color"`
}

type CompanyChartRow struct {
	CompanyID string     `json:"companyId"`
	Name      string     `json:"name"`
	Bars      []ChartBar `json:"bars"`
}

type Chart struct {
	Domain    [2]int            `json:"domain"`
	Width     int               `json:"width"`
	Companies []CompanyChartRow `json:"companies"`
}

type ChartService struct {
	Companies *repos.CompanyRepo
}

func NewChartService(companies *repos.CompanyRepo) *ChartService {
	return &ChartService{Companies: companies}
}

// CompanyChart produces one row per company with three bars scaled to the
// requested pixel width. Unrated metrics get a zero-width bar, mirroring
// how the dashboard treats a missing rating as nothing to draw.
func (s *ChartService) CompanyChart(width int) (Chart, error) {
	if width <= 0 {
		width = 600
	}
	companies, err := s.Companies.List("")
	if err != nil {
		return Chart{}, apperr.Internal("could not list companies", err)
	}
	return BuildChart(companies, width), nil
}

func BuildChart(companies []domain.Company, width int) Chart {
	rows := make([]CompanyChartRow, len(companies))
	for i, c := range companies {
		bars := make([]ChartBar, len(chartMetrics))
		for j, m := range chartMetrics {
			v := m.Value(c)
			bars[j] = ChartBar{Metric: m.Metric, Value: v, Width: scaleRating(v, width), Color: m.Color}
		}
		rows[i] = CompanyChartRow{CompanyID: c.ID, Name: c.Name, Bars: bars}
	}
	return Chart{Domain: [2]int{0, chartRatingMax}, Width: width, Companies: rows}
}

func scaleRating(v *int, width int) float64 {
	if v == nil {
		return 0
	}
	return float64(*v) * float64(width) / chartRatingMax
}
