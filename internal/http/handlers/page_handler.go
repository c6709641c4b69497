package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/middleware"
	"github.com/ignatzorin/portfolio-backend/internal/http/response"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// AdminScreen экран админки и API, из которого он берёт данные.
type AdminScreen struct {
	Screen string
	Title  string
	API    string
}

// AdminScreens экраны в порядке меню.
var AdminScreens = []AdminScreen{
	{Screen: "dashboard", Title: "Dashboard", API: "/api/admin/dashboard"},
	{Screen: "profile", Title: "Profile", API: "/api/admin/profile"},
	{Screen: "services", Title: "Services", API: "/api/admin/services"},
	{Screen: "skills", Title: "Skills", API: "/api/admin/skills"},
	{Screen: "portfolio", Title: "Portfolio", API: "/api/admin/projects"},
	{Screen: "experience", Title: "Experience", API: "/api/admin/experiences"},
	{Screen: "testimonials", Title: "Testimonials", API: "/api/admin/testimonials"},
	{Screen: "messages", Title: "Messages", API: "/api/admin/messages"},
	{Screen: "settings", Title: "Settings", API: "/api/admin/settings"},
}

// CurrentSession проверка сессии для страницы входа.
type CurrentSession interface {
	Current(ctx context.Context, r *http.Request) (*service.Session, error)
}

// PageHandler HTML страницы сайта и оболочки админки.
type PageHandler struct {
	site     SiteReader
	sessions CurrentSession
}

// NewPageHandler создаёт хэндлер страниц.
func NewPageHandler(site SiteReader, sessions CurrentSession) *PageHandler {
	return &PageHandler{site: site, sessions: sessions}
}

// Index отдаёт главную страницу. Если содержимое не прочиталось, страница рендерится пустой.
func (h *PageHandler) Index(c *gin.Context) {
	content, err := h.site.Content(c.Request.Context())
	if err != nil {
		logger.Component("pages").WithError(err).Error("не удалось загрузить содержимое сайта")
		content = &dto.SiteContent{}
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Content": content})
}

// Login отдаёт страницу входа. С действующей сессией сразу ведёт на дашборд.
func (h *PageHandler) Login(c *gin.Context) {
	if session, err := h.sessions.Current(c.Request.Context(), c.Request); err == nil && session != nil {
		c.Redirect(http.StatusFound, DashboardPath)
		return
	}
	c.HTML(http.StatusOK, "admin_login.html", nil)
}

// Screen отдаёт оболочку экрана админки. Маршрут должен идти после AdminGuard.
func (h *PageHandler) Screen(screen AdminScreen) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := ""
		if session, ok := middleware.SessionFromContext(c); ok {
			email = session.Email
		}
		c.HTML(http.StatusOK, "admin_layout.html", gin.H{
			"Screen": screen.Screen,
			"Title":  screen.Title,
			"API":    screen.API,
			"Nav":    AdminScreens,
			"Email":  email,
		})
	}
}

// NotFound отвечает на неизвестные пути: JSON для /api, иначе HTML страница.
func (h *PageHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/api" {
		response.NotFound(c, "маршрут не найден")
		return
	}
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{"Path": c.Request.URL.Path})
}
