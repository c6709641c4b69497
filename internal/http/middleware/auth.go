package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/http/response"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey  = "userID"
	ContextSessionKey = "session"
)

// LoginPath страница входа, на которую уходят запросы без сессии.
const LoginPath = "/admin"

// SessionReader часть SessionManager, нужная middleware.
type SessionReader interface {
	Current(ctx context.Context, r *http.Request) (*service.Session, error)
	MarkLoggedIn(w http.ResponseWriter)
	ClearLoggedIn(w http.ResponseWriter)
}

// AdminGuard защищает страницы админки. Без действующей сессии запрос
// перенаправляется на страницу входа до того, как выполнится обработчик экрана.
func AdminGuard(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessions.Current(c.Request.Context(), c.Request)
		if err != nil || session == nil {
			if err != nil && !apperror.IsUnauthorized(err) {
				logger.Component("guard").WithFields(map[string]interface{}{
					"path": c.Request.URL.Path,
				}).WithError(err).Warn("ошибка проверки сессии")
			}
			sessions.ClearLoggedIn(c.Writer)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		sessions.MarkLoggedIn(c.Writer)
		c.Set(ContextUserIDKey, session.UserID)
		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// AdminAuth защищает API админки. Токен принимается из заголовка Authorization или cookie.
func AdminAuth(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessions.Current(c.Request.Context(), c.Request)
		if err != nil || session == nil {
			if apperror.IsUnauthorized(err) {
				response.Error(c, err)
			} else {
				response.Unauthorized(c, apperror.ErrUnauthorized.Message)
			}
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, session.UserID)
		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// SessionFromContext возвращает сессию, сохранённую AdminGuard или AdminAuth.
func SessionFromContext(c *gin.Context) (*service.Session, bool) {
	value, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil, false
	}
	session, ok := value.(*service.Session)
	return session, ok
}
