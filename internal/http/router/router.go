package router

import (
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers"
	"github.com/ignatzorin/portfolio-backend/internal/http/middleware"
)

// ContentRoutes экран управления сущностью, который сам регистрирует свои маршруты.
type ContentRoutes interface {
	Register(group *gin.RouterGroup, idValidator gin.HandlerFunc)
}

// ContentRoute путь экрана внутри /api/admin.
type ContentRoute struct {
	Path   string
	Routes ContentRoutes
}

// Handlers все HTTP обработчики приложения.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Pages     *handlers.PageHandler
	Site      *handlers.SiteHandler
	Messages  *handlers.MessageHandler
	Dashboard *handlers.DashboardHandler
	Media     *handlers.MediaHandler
	Bootstrap *handlers.BootstrapHandler
	WS        *handlers.WSHandler
	Health    *handlers.HealthHandler
	Content   []ContentRoute
}

// SetupRouter собирает gin engine. CORS оборачивает engine снаружи, в main.
func SetupRouter(
	cfg *config.Config,
	h Handlers,
	templates *template.Template,
	sessions middleware.SessionReader,
	visits middleware.VisitRecorder,
) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if templates == nil {
		return nil, fmt.Errorf("router: шаблоны не загружены")
	}

	r := gin.Default()
	r.SetHTMLTemplate(templates)
	r.Use(middleware.ErrorHandler())
	if visits != nil {
		r.Use(middleware.VisitTracker(visits))
	}

	r.GET("/health", h.Health.Health)
	r.Static("/storage", cfg.StoragePath)

	// Страницы
	r.GET("/", h.Pages.Index)
	r.GET(middleware.LoginPath, h.Pages.Login)

	adminPages := r.Group("/admin")
	adminPages.Use(middleware.AdminGuard(sessions))
	for _, screen := range handlers.AdminScreens {
		adminPages.GET("/"+screen.Screen, h.Pages.Screen(screen))
	}

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/session", h.Auth.Session)
	}

	// Публичные маршруты
	api.GET("/site", h.Site.Content)
	api.GET("/profile", h.Site.Section(func(s *dto.SiteContent) any { return s.Profile }))
	api.GET("/services", h.Site.Section(func(s *dto.SiteContent) any { return s.Services }))
	api.GET("/skills", h.Site.Section(func(s *dto.SiteContent) any { return s.Skills }))
	api.GET("/projects", h.Site.Section(func(s *dto.SiteContent) any { return s.Projects }))
	api.GET("/experiences", h.Site.Section(func(s *dto.SiteContent) any { return s.Experiences }))
	api.GET("/testimonials", h.Site.Section(func(s *dto.SiteContent) any { return s.Testimonials }))
	api.POST("/messages", h.Messages.Submit)
	api.POST("/visits", h.Site.Visit)

	// Админка
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(sessions))
	{
		idValidator := middleware.UUIDValidator("id")

		admin.GET("/dashboard", h.Dashboard.Summary)

		for _, route := range h.Content {
			route.Routes.Register(admin.Group(route.Path), idValidator)
		}
		admin.POST("/projects/draft/tags", handlers.EditTags)

		admin.GET("/messages", h.Messages.List)
		admin.GET("/messages/:id", idValidator, h.Messages.Open)
		admin.DELETE("/messages/:id", idValidator, h.Messages.Delete)

		admin.POST("/media/:bucket", h.Media.Upload)
		admin.DELETE("/media/:bucket/*path", h.Media.Delete)

		admin.POST("/bootstrap", h.Bootstrap.Run)
		admin.GET("/ws", h.WS.Handle)
	}

	r.NoRoute(h.Pages.NotFound)

	return r, nil
}
