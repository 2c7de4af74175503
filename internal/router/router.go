package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/atlastile/cms-go-api/internal/config"
	"github.com/atlastile/cms-go-api/internal/handler"
	"github.com/atlastile/cms-go-api/internal/middleware"
	"github.com/atlastile/cms-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	ProductHandler     *handler.ProductHandler
	CatalogHandler     *handler.CatalogHandler
	MenuHandler        *handler.MenuHandler
	PageHandler        *handler.PageHandler
	BannerHandler      *handler.BannerHandler
	ArticleHandler     *handler.ArticleHandler
	DistributorHandler *handler.DistributorHandler
	SubscriberHandler  *handler.SubscriberHandler
	SettingHandler     *handler.SettingHandler
	ActivityHandler    *handler.ActivityHandler
	UploadHandler      *handler.UploadHandler
	StoreHandler       *handler.StoreHandler
	ProjectHandler     *handler.ProjectHandler
	UserHandler        *handler.UserHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Auth
	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 10, time.Minute))
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(api.Group("/auth", jwtMiddleware))
	}

	// Public read surface
	if deps.ProductHandler != nil {
		deps.ProductHandler.RegisterPublic(api.Group("/products"))
	}
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterPublic(api.Group("/categories"), api.Group("/brochures"))
	}
	if deps.MenuHandler != nil {
		deps.MenuHandler.RegisterPublic(api.Group("/menus"))
	}
	if deps.PageHandler != nil {
		deps.PageHandler.RegisterPublic(api.Group("/pages"))
	}
	if deps.BannerHandler != nil {
		deps.BannerHandler.RegisterPublic(api.Group("/banners"))
	}
	if deps.ArticleHandler != nil {
		deps.ArticleHandler.RegisterPublic(api.Group("/articles"))
	}
	if deps.StoreHandler != nil {
		deps.StoreHandler.RegisterPublic(api.Group("/stores"))
	}
	if deps.ProjectHandler != nil {
		deps.ProjectHandler.RegisterPublic(api.Group("/projects"))
	}

	// Public write surface, rate limited per client
	publicForms := middleware.RateLimit("public_forms", 20, time.Minute)
	if deps.DistributorHandler != nil {
		deps.DistributorHandler.RegisterPublic(api.Group("/distributors", publicForms))
	}
	if deps.SubscriberHandler != nil {
		deps.SubscriberHandler.RegisterPublic(api.Group("/subscribers", publicForms))
	}
	if deps.SettingHandler != nil {
		deps.SettingHandler.RegisterPublic(api.Group("/settings"))
	}

	// Admin surface: editors manage content, admins additionally read the
	// activity log and subscriber list.
	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole("admin", "editor"))

	if deps.ProductHandler != nil {
		deps.ProductHandler.Register(admin.Group("/products"))
	}
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterCategories(admin.Group("/categories"))
		deps.CatalogHandler.RegisterBrochures(admin.Group("/brochures"))
	}
	if deps.MenuHandler != nil {
		deps.MenuHandler.Register(admin.Group("/menus"))
		deps.MenuHandler.RegisterItems(admin.Group("/menu-items"))
	}
	if deps.PageHandler != nil {
		deps.PageHandler.Register(admin.Group("/pages"))
	}
	if deps.BannerHandler != nil {
		deps.BannerHandler.Register(admin.Group("/banners"))
	}
	if deps.ArticleHandler != nil {
		deps.ArticleHandler.Register(admin.Group("/articles"))
	}
	if deps.DistributorHandler != nil {
		deps.DistributorHandler.Register(admin.Group("/distributors"))
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(admin.Group("/uploads"))
	}
	if deps.SettingHandler != nil {
		deps.SettingHandler.Register(admin.Group("/settings"))
	}
	if deps.StoreHandler != nil {
		deps.StoreHandler.Register(admin.Group("/stores"))
	}
	if deps.ProjectHandler != nil {
		deps.ProjectHandler.Register(admin.Group("/projects"))
	}

	// Admin-only routes enforce the role themselves via middleware.WithAuth,
	// so they share the editor-accessible group.
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(admin.Group("/activity-logs"))
	}
	if deps.SubscriberHandler != nil {
		deps.SubscriberHandler.Register(admin.Group("/subscribers"))
	}
	if deps.UserHandler != nil {
		deps.UserHandler.Register(admin.Group("/users"))
		deps.UserHandler.RegisterProfile(api.Group("/profile", jwtMiddleware))
	}
}
