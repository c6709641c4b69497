package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/response"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// DashboardPath куда попадает администратор после входа.
const DashboardPath = "/admin/dashboard"

// AuthSessions часть SessionManager, нужная AuthHandler.
type AuthSessions interface {
	SignIn(ctx context.Context, w http.ResponseWriter, email, password string, meta service.SessionMeta) (*service.Session, error)
	Current(ctx context.Context, r *http.Request) (*service.Session, error)
	SignOut(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// AuthHandler предоставляет HTTP слой для входа администратора.
type AuthHandler struct {
	sessions AuthSessions
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(sessions AuthSessions) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login обрабатывает POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "email и пароль обязательны")
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		response.BadRequest(c, "пароль обязателен")
		return
	}

	meta := service.SessionMeta{
		UserAgent: c.GetHeader("User-Agent"),
		IP:        c.ClientIP(),
	}

	session, err := h.sessions.SignIn(c.Request.Context(), c.Writer, req.Email, req.Password, meta)
	if err != nil {
		logger.Component("auth").WithField("ip", meta.IP).WithError(err).Info("неудачная попытка входа")
		response.Error(c, service.FriendlyLoginError(err))
		return
	}

	response.Success(c, dto.SessionResponse{
		Token:     session.Token,
		UserID:    session.UserID,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
		Redirect:  DashboardPath,
	})
}

// Logout обрабатывает POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.SignOut(c.Request.Context(), c.Writer, c.Request); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"signed_out": true})
}

// Session обрабатывает GET /api/auth/session и возвращает текущую сессию.
func (h *AuthHandler) Session(c *gin.Context) {
	session, err := h.sessions.Current(c.Request.Context(), c.Request)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SessionResponse{
		UserID:    session.UserID,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	})
}
