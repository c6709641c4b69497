package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/http/response"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// MediaManager загрузка и удаление файлов в бакетах.
type MediaManager interface {
	Upload(ctx context.Context, bucket, filename string, r io.Reader) (*service.MediaObject, error)
	Delete(ctx context.Context, bucket, objectPath string) error
}

// MediaHandler управляет загрузкой и удалением медиа-файлов.
type MediaHandler struct {
	media MediaManager
}

// NewMediaHandler создаёт новый хэндлер.
func NewMediaHandler(media MediaManager) *MediaHandler {
	return &MediaHandler{media: media}
}

// Upload обрабатывает POST /api/admin/media/:bucket с полем file.
func (h *MediaHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "поле file обязательно")
		return
	}
	if header.Size == 0 {
		response.BadRequest(c, "файл не может быть пустым")
		return
	}

	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "не удалось прочитать файл")
		return
	}
	defer file.Close()

	obj, err := h.media.Upload(c.Request.Context(), c.Param("bucket"), header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, obj)
}

// Delete обрабатывает DELETE /api/admin/media/:bucket/*path.
func (h *MediaHandler) Delete(c *gin.Context) {
	bucket, objectPath := c.Param("bucket"), c.Param("path")
	if err := h.media.Delete(c.Request.Context(), bucket, objectPath); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c, objectPath)
}
