package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"companyviz/internal/apperr"
	"companyviz/internal/domain"
	applog "companyviz/internal/log"
	"companyviz/internal/repos"
	"companyviz/internal/services"
	"companyviz/internal/validate"
)

type CompanyHandler struct {
	Companies *services.CompanyService
}

type companyCreateReq struct {
	Name                 string `json:"name"`
	EthicsRating         *int   `json:"ethicsRating"`
	PriceRating          *int   `json:"priceRating"`
	QualityServiceRating *int   `json:"qualityServiceRating"`
}

// POST /api/v1/companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var req companyCreateReq
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		// Non-integer ratings (2.5, "3") fail here, before any store call.
		applog.Security(c, "validation.fail", map[string]any{"entity": "company"})
		return apperr.Validation("body", "malformed request body")
	}
	company, err := h.Companies.Create(caller(c).ID, services.CompanyInput{
		Name:                 req.Name,
		EthicsRating:         req.EthicsRating,
		PriceRating:          req.PriceRating,
		QualityServiceRating: req.QualityServiceRating,
	})
	if err != nil {
		return err
	}
	applog.Audit(c, "company.create", map[string]any{"company_id": company.ID, "name": company.Name})
	return c.Status(fiber.StatusCreated).JSON(company)
}

// GET /api/v1/companies
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	out, err := h.Companies.GetAll(q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GET /api/v1/companies/:id
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.UUID(c.Params("id"))
	if !ok {
		return apperr.Validation("id", "id must be a valid identifier")
	}
	out, err := h.Companies.GetByID(id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

type companyUpdateReq struct {
	Name                 domain.Opt[string] `json:"name"`
	EthicsRating         domain.Opt[int]    `json:"ethicsRating"`
	PriceRating          domain.Opt[int]    `json:"priceRating"`
	QualityServiceRating domain.Opt[int]    `json:"qualityServiceRating"`
}

// PATCH /api/v1/companies/:id — partial update. Omitted fields are left
// untouched; an explicit null clears a rating. The name cannot be cleared.
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.UUID(c.Params("id"))
	if !ok {
		return apperr.Validation("id", "id must be a valid identifier")
	}
	var req companyUpdateReq
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"entity": "company"})
		return apperr.Validation("body", "malformed request body")
	}

	patch := repos.CompanyPatch{
		EthicsRating:         req.EthicsRating,
		PriceRating:          req.PriceRating,
		QualityServiceRating: req.QualityServiceRating,
	}
	if req.Name.Present {
		if req.Name.Null {
			return apperr.Validation("name", "company name cannot be cleared")
		}
		v := req.Name.Value
		patch.Name = &v
	}

	company, err := h.Companies.Update(id, patch)
	if err != nil {
		return err
	}
	applog.Audit(c, "company.update", map[string]any{"company_id": id})
	return c.JSON(company)
}

// DELETE /api/v1/companies/:id — blocked with Conflict while availability
// rows still reference the company.
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.UUID(c.Params("id"))
	if !ok {
		return apperr.Validation("id", "id must be a valid identifier")
	}
	if err := h.Companies.Delete(id); err != nil {
		return err
	}
	applog.Audit(c, "company.delete", map[string]any{"company_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
