package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// Pinger проверяет соединение с базой.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	db      Pinger
	buckets service.BucketChecker
}

// NewHealthHandler создаёт новый health handler.
func NewHealthHandler(db Pinger, buckets service.BucketChecker) *HealthHandler {
	return &HealthHandler{db: db, buckets: buckets}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "unhealthy"
		status = "unhealthy"
	} else {
		checks["database"] = "healthy"
	}

	// Бакеты создаются вручную, их отсутствие не делает сервис нездоровым.
	if h.buckets != nil {
		missing := 0
		for _, bucket := range models.Buckets {
			if ok, err := h.buckets.BucketExists(ctx, bucket); err != nil || !ok {
				missing++
			}
		}
		if missing > 0 {
			checks["storage"] = "warning: missing buckets"
		} else {
			checks["storage"] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}
