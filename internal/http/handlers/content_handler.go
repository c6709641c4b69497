package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/http/response"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// ContentHandler HTTP обработчики экрана управления сущностью.
type ContentHandler[T any, D dto.Draft] struct {
	content *service.ContentService[T, D]
}

// NewContentHandler создаёт обработчик для экрана.
func NewContentHandler[T any, D dto.Draft](content *service.ContentService[T, D]) *ContentHandler[T, D] {
	return &ContentHandler[T, D]{content: content}
}

// Register регистрирует маршруты экрана в группе.
func (h *ContentHandler[T, D]) Register(group *gin.RouterGroup, idValidator gin.HandlerFunc) {
	group.GET("", h.List)
	group.GET("/draft", h.NewDraft)
	group.GET("/:id/draft", idValidator, h.EditDraft)
	group.POST("", h.Create)
	group.PUT("/:id", idValidator, h.Update)
	group.DELETE("/:id", idValidator, h.Delete)
}

// List обрабатывает GET список записей.
func (h *ContentHandler[T, D]) List(c *gin.Context) {
	items, err := h.content.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// NewDraft обрабатывает GET /draft и отдаёт пустой черновик формы.
func (h *ContentHandler[T, D]) NewDraft(c *gin.Context) {
	response.Success(c, h.content.NewDraft())
}

// EditDraft обрабатывает GET /:id/draft.
func (h *ContentHandler[T, D]) EditDraft(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	draft, err := h.content.EditDraft(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, draft)
}

// Create обрабатывает POST. Черновик с идентификатором обновляет запись.
func (h *ContentHandler[T, D]) Create(c *gin.Context) {
	draft := h.content.NewDraft()
	result, err := h.submit(c, draft)
	if err != nil {
		response.Error(c, err)
		return
	}

	_, updated := draft.DraftID()
	response.Submitted(c, updated, dto.SubmitResponse{Item: result.Item, Draft: result.Draft})
}

// Update обрабатывает PUT /:id. Идентификатор берётся из пути.
func (h *ContentHandler[T, D]) Update(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	draft := h.content.NewDraft()
	draft.SetID(id)
	result, err := h.submit(c, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.SubmitResponse{Item: result.Item, Draft: result.Draft})
}

// Delete обрабатывает DELETE /:id?confirm=true.
func (h *ContentHandler[T, D]) Delete(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if !common.Confirmed(c) {
		response.ConfirmationRequired(c)
		return
	}
	if err := h.content.Delete(c.Request.Context(), id, true); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c, id)
}

// submit разбирает тело запроса в черновик и сохраняет его вместе с приложенными файлами.
func (h *ContentHandler[T, D]) submit(c *gin.Context, draft D) (*service.SubmitResult[T, D], error) {
	pathID, hasPathID := draft.DraftID()

	uploads, closeAll, err := bindDraft(c, draft)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	if hasPathID {
		draft.SetID(pathID)
	}
	return h.content.Submit(c.Request.Context(), draft, uploads)
}

// bindDraft заполняет черновик из JSON или multipart формы.
// Файлы формы возвращаются как FileUpload, closeAll закрывает их.
func bindDraft(c *gin.Context, draft any) ([]service.FileUpload, func(), error) {
	noop := func() {}

	if !strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if err := c.ShouldBindJSON(draft); err != nil {
			return nil, noop, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса")
		}
		return nil, noop, nil
	}

	// binding.Form читает только текстовые поля: файлы приходят в те же ключи, что и адреса.
	if err := c.ShouldBindWith(draft, binding.Form); err != nil {
		return nil, noop, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректные данные формы")
	}

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректные данные формы")
	}

	var (
		uploads []service.FileUpload
		opened  []multipart.File
	)
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for field, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		file, err := headers[0].Open()
		if err != nil {
			closeAll()
			return nil, noop, apperror.Wrap(err, apperror.ErrCodeBadRequest, "не удалось прочитать файл "+headers[0].Filename)
		}
		opened = append(opened, file)
		uploads = append(uploads, service.FileUpload{
			Field:    field,
			Filename: headers[0].Filename,
			Content:  io.Reader(file),
		})
	}

	return uploads, closeAll, nil
}
