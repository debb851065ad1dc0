package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"companyviz/internal/config"
	"companyviz/internal/http/handlers"
	applog "companyviz/internal/log"
	"companyviz/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN, cfg.SeedDemo)
	if err != nil {
		log.Fatal(err)
	}

	deps := handlers.NewDeps(db)

	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Server().MaxRequestBodySize = 2 << 20 // bulk uploads stay small

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := deps.Auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))
	// CSRF guards the HTML forms; the JSON API relies on the SameSite sid
	// cookie and is exempt.
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Pages ----------
	app.Get("/", deps.DashboardHandler.Home)
	app.Get("/dashboard", handlers.RequireUserPage(deps.Auth), deps.DashboardHandler.Home)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	// ---------- API ----------
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

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": fiber.Map{"kind": "not_found", "message": "no such route"}})
		}
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
