package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"companyviz/internal/http/handlers"
	"companyviz/internal/repos"
)

func newPageApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:", false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})

	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", deps.AuthHandler.Login)
	app.Get("/dashboard", handlers.RequireUserPage(deps.Auth), deps.DashboardHandler.Home)
	return app
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestLoginFlow(t *testing.T) {
	app := newPageApp(t)

	// Wrong password: 401, no session bound.
	resp := postForm(t, app, "/login", url.Values{
		"email":    {"admin@companyviz.test"},
		"password": {"WrongPass1!"},
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: want 401, got %d", resp.StatusCode)
	}

	// Seeded admin can sign in and reach the dashboard.
	resp = postForm(t, app, "/login", url.Values{
		"email":    {"admin@companyviz.test"},
		"password": {"Passw0rd!"},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login: want redirect, got %d", resp.StatusCode)
	}
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("no sid cookie set on login")
	}

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	dash, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if dash.StatusCode != http.StatusOK {
		t.Fatalf("dashboard after login: want 200, got %d", dash.StatusCode)
	}
}

func TestDashboardRedirectsAnonymous(t *testing.T) {
	app := newPageApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("anonymous dashboard: want redirect, got %d", resp.StatusCode)
	}
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
