package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// Bootstrapper запускает проверку и заполнение хранилища.
type Bootstrapper interface {
	Run(ctx context.Context) service.BootstrapSummary
}

// BootstrapHandler повторный запуск инициализации из админки.
type BootstrapHandler struct {
	bootstrap Bootstrapper
}

// NewBootstrapHandler создаёт хэндлер.
func NewBootstrapHandler(bootstrap Bootstrapper) *BootstrapHandler {
	return &BootstrapHandler{bootstrap: bootstrap}
}

// Run обрабатывает POST /api/admin/bootstrap.
// Сводка отдаётся как есть: неуспешный запуск отвечает 503 с тем же телом.
func (h *BootstrapHandler) Run(c *gin.Context) {
	summary := h.bootstrap.Run(c.Request.Context())

	status := http.StatusOK
	if !summary.Success {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"success": summary.Success,
		"data":    summary,
	})
}
