package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"companyviz/internal/apperr"
	applog "companyviz/internal/log"
	"companyviz/internal/services"
	"companyviz/internal/validate"
)

type AvailabilityHandler struct {
	Avail *services.AvailabilityService
}

type setAvailabilityReq struct {
	CompanyID string `json:"companyId"`
	ProductID string `json:"productId"`
	Status    string `json:"status"`
}

// PUT /api/v1/availability — upsert keyed on the (company, product) pair.
func (h *AvailabilityHandler) Set(c *fiber.Ctx) error {
	var req setAvailabilityReq
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"entity": "availability"})
		return apperr.Validation("body", "malformed request body")
	}
	companyID, ok := validate.UUID(req.CompanyID)
	if !ok {
		return apperr.Validation("companyId", "companyId must be a valid identifier")
	}
	productID, ok := validate.UUID(req.ProductID)
	if !ok {
		return apperr.Validation("productId", "productId must be a valid identifier")
	}
	status, ok := validate.Status(req.Status)
	if !ok {
		return apperr.Validation("status", "status must be AVAILABLE, NOT_AVAILABLE or UNKNOWN")
	}

	a, err := h.Avail.Set(companyID, productID, status)
	if err != nil {
		return err
	}
	applog.Audit(c, "availability.set", map[string]any{
		"company_id": companyID, "product_id": productID, "status": status,
	})
	return c.JSON(a)
}

// GET /api/v1/availability?companyId=&productId= — a pair never written
// answers found:false; that is a valid result, not an error, and is
// distinct from a row explicitly holding UNKNOWN.
func (h *AvailabilityHandler) Get(c *fiber.Ctx) error {
	companyID, ok := validate.UUID(c.Query("companyId"))
	if !ok {
		return apperr.Validation("companyId", "companyId must be a valid identifier")
	}
	productID, ok := validate.UUID(c.Query("productId"))
	if !ok {
		return apperr.Validation("productId", "productId must be a valid identifier")
	}

	a, err := h.Avail.Get(companyID, productID)
	if err != nil {
		return err
	}
	if a == nil {
		return c.JSON(fiber.Map{"found": false, "availability": nil})
	}
	return c.JSON(fiber.Map{"found": true, "availability": a})
}
