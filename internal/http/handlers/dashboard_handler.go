package handlers

import "github.com/gofiber/fiber/v2"

type DashboardHandler struct{}

// GET / — the landing page: a login prompt for anonymous visitors, the
// ratings chart for signed-in users. Chart data comes from the API.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	return render(c, "dashboard", fiber.Map{})
}
