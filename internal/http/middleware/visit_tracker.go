package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/goroutine"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
)

// VisitRecorder сохраняет просмотр страницы.
type VisitRecorder interface {
	Record(ctx context.Context, req dto.VisitRequest) error
}

const visitRecordTimeout = 5 * time.Second

// VisitTracker учитывает просмотры публичных страниц в фоне.
// Служебные пути, ошибки и запросы с DNT: 1 не учитываются.
func VisitTracker(recorder VisitRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !shouldTrack(c) {
			return
		}

		req := dto.VisitRequest{Page: c.Request.URL.Path}
		if ref := c.Request.Referer(); ref != "" {
			req.Referrer = &ref
		}
		if ua := c.Request.UserAgent(); ua != "" {
			req.UserAgent = &ua
		}

		goroutine.SafeGo(func() {
			ctx, cancel := context.WithTimeout(context.Background(), visitRecordTimeout)
			defer cancel()
			if err := recorder.Record(ctx, req); err != nil {
				logger.Component("visits").WithField("page", req.Page).WithError(err).Warn("не удалось сохранить просмотр")
			}
		})
	}
}

func shouldTrack(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet || c.Writer.Status() != http.StatusOK {
		return false
	}
	if c.GetHeader("DNT") == "1" {
		return false
	}

	path := c.Request.URL.Path
	for _, prefix := range []string{"/api", "/admin", "/storage", "/static", "/health"} {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return false
		}
	}
	return true
}
