package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"companyviz/internal/apperr"
	"companyviz/internal/domain"
	applog "companyviz/internal/log"
	"companyviz/internal/services"
	"companyviz/internal/validate"
)

type ProductHandler struct {
	Products *services.ProductService
}

type productCreateReq struct {
	Name string `json:"name"`
}

// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productCreateReq
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"entity": "product"})
		return apperr.Validation("body", "malformed request body")
	}
	p, err := h.Products.Create(caller(c).ID, req.Name)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GET /api/v1/products — newest first.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.Products.GetAll()
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.UUID(c.Params("id"))
	if !ok {
		return apperr.Validation("id", "id must be a valid identifier")
	}
	out, err := h.Products.GetByID(id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

type productUpdateReq struct {
	Name domain.Opt[string] `json:"name"`
}

// PATCH /api/v1/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.UUID(c.Params("id"))
	if !ok {
		return apperr.Validation("id", "id must be a valid identifier")
	}
	var req productUpdateReq
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"entity": "product"})
		return apperr.Validation("body", "malformed request body")
	}
	var name *string
	if req.Name.Present {
		if req.Name.Null {
			return apperr.Validation("name", "product name cannot be cleared")
		}
		v := req.Name.Value
		name = &v
	}
	p, err := h.Products.Update(id, name)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

// DELETE /api/v1/products/:id — responds with the deleted record and its
// inclusions so the caller can show what was removed.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.UUID(c.Params("id"))
	if !ok {
		return apperr.Validation("id", "id must be a valid identifier")
	}
	d, err := h.Products.Delete(id)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(d)
}
