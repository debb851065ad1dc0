package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"companyviz/internal/apperr"
	applog "companyviz/internal/log"
	"companyviz/internal/services"
)

type UploadHandler struct {
	Bulk *services.BulkImportService
}

// maxUploadBytes caps a single bulk upload; the global body limit is the
// outer guard.
const maxUploadBytes = 1 << 20

// POST /api/v1/companies/bulk — accepts a CSV blob either as an uploaded
// "file", a "data" form field, or the raw request body.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	blob, err := readBlob(c)
	if err != nil {
		return err
	}
	report, err := h.Bulk.Import(caller(c).ID, blob)
	if err != nil {
		return err
	}
	applog.Audit(c, "company.bulk_upload", map[string]any{
		"imported": report.Imported, "skipped": len(report.Skipped),
	})
	return c.JSON(report)
}

func readBlob(c *fiber.Ctx) (string, error) {
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		if fh.Size > maxUploadBytes {
			return "", apperr.Validation("file", "upload too large")
		}
		f, err := fh.Open()
		if err != nil {
			return "", apperr.Internal("could not open upload", err)
		}
		defer f.Close()
		b, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		if err != nil {
			return "", apperr.Internal("could not read upload", err)
		}
		return string(b), nil
	}
	if data := c.FormValue("data"); data != "" {
		return data, nil
	}
	return string(c.Body()), nil
}
