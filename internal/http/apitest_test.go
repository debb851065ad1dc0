package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"companyviz/internal/http/handlers"
	"companyviz/internal/repos"
)

// newAPIApp wires the JSON API exactly as main does, on an in-memory
// database with the seeded users, and binds one session per role.
func newAPIApp(t *testing.T) (*fiber.App, *handlers.Deps) {
	t.Helper()
	db, err := repos.OpenDB(":memory:", false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db)

	userRepo := repos.NewUserRepo(db)
	if err := userRepo.BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.BindSession("sid-user", "u-viewer"); err != nil {
		t.Fatal(err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())

	protected := handlers.RequireTier(deps.Auth, handlers.TierProtected)
	admin := handlers.RequireTier(deps.Auth, handlers.TierAdmin)

	api := app.Group("/api/v1")
	companies := api.Group("/companies")
	companies.Post("/", admin, deps.CompanyHandler.Create)
	companies.Post("/bulk", admin, deps.UploadHandler.Upload)
	companies.Get("/", protected, deps.CompanyHandler.List)
	companies.Get("/:id", protected, deps.CompanyHandler.Get)
	companies.Patch("/:id", admin, deps.CompanyHandler.Update)
	companies.Delete("/:id", admin, deps.CompanyHandler.Delete)

	products := api.Group("/products")
	products.Post("/", admin, deps.ProductHandler.Create)
	products.Get("/", protected, deps.ProductHandler.List)
	products.Get("/:id", protected, deps.ProductHandler.Get)
	products.Patch("/:id", admin, deps.ProductHandler.Update)
	products.Delete("/:id", admin, deps.ProductHandler.Delete)

	api.Put("/availability", admin, deps.AvailabilityHandler.Set)
	api.Get("/availability", protected, deps.AvailabilityHandler.Get)
	api.Get("/chart/companies", protected, deps.ChartHandler.Companies)

	return app, deps
}

// doJSON issues a request with an optional JSON body and session cookie.
func doJSON(t *testing.T, app *fiber.App, method, path, sid, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createCompany(t *testing.T, app *fiber.App, body string) map[string]any {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/v1/companies", "sid-admin", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create company: status %d", resp.StatusCode)
	}
	var out map[string]any
	decode(t, resp, &out)
	return out
}

func createProduct(t *testing.T, app *fiber.App, name string) map[string]any {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/v1/products", "sid-admin", `{"name":"`+name+`"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product: status %d", resp.StatusCode)
	}
	var out map[string]any
	decode(t, resp, &out)
	return out
}
