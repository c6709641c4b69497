package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/response"
)

// SiteReader содержимое публичного сайта.
type SiteReader interface {
	Content(ctx context.Context) (*dto.SiteContent, error)
}

// VisitWriter записывает просмотры страниц.
type VisitWriter interface {
	Record(ctx context.Context, req dto.VisitRequest) error
}

// SiteHandler публичное API сайта: содержимое и отметки о просмотрах.
type SiteHandler struct {
	site   SiteReader
	visits VisitWriter
}

// NewSiteHandler создаёт хэндлер.
func NewSiteHandler(site SiteReader, visits VisitWriter) *SiteHandler {
	return &SiteHandler{site: site, visits: visits}
}

// Content обрабатывает GET /api/site.
func (h *SiteHandler) Content(c *gin.Context) {
	content, err := h.site.Content(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, content)
}

// Section отдаёт одну секцию сайта: GET /api/profile, /api/services и т.д.
func (h *SiteHandler) Section(pick func(*dto.SiteContent) any) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, err := h.site.Content(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, pick(content))
	}
}

// Visit обрабатывает POST /api/visits. Запросы с DNT: 1 не записываются.
func (h *SiteHandler) Visit(c *gin.Context) {
	if c.GetHeader("DNT") == "1" {
		response.NoContent(c)
		return
	}

	var req dto.VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "поле page обязательно")
		return
	}
	if req.UserAgent == nil {
		if ua := c.GetHeader("User-Agent"); ua != "" {
			req.UserAgent = &ua
		}
	}

	if err := h.visits.Record(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
