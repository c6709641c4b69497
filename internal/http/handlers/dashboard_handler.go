package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/response"
)

// DashboardReader источник сводки дашборда.
type DashboardReader interface {
	Summary(ctx context.Context) (*dto.DashboardResponse, error)
}

// DashboardHandler отдаёт сводку для главной страницы админки.
type DashboardHandler struct {
	dashboard DashboardReader
}

// NewDashboardHandler создаёт хэндлер.
func NewDashboardHandler(dashboard DashboardReader) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary обрабатывает GET /api/admin/dashboard.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}
