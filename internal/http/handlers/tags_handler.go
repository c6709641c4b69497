package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/response"
)

// EditTags обрабатывает POST /api/admin/projects/draft/tags.
// Применяет add или remove к присланному списку и возвращает новый список, не сохраняя его.
func EditTags(c *gin.Context) {
	var req dto.TagEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "op должен быть add или remove")
		return
	}
	response.Success(c, gin.H{"tags": req.Apply()})
}
