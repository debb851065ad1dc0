package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"companyviz/internal/services"
)

type ChartHandler struct {
	Chart *services.ChartService
}

// GET /api/v1/chart/companies?width= — rating bars scaled from the fixed
// [0,5] domain to the requested pixel width.
func (h *ChartHandler) Companies(c *fiber.Ctx) error {
	width, _ := strconv.Atoi(c.Query("width"))
	chart, err := h.Chart.CompanyChart(width)
	if err != nil {
		return err
	}
	return c.JSON(chart)
}
