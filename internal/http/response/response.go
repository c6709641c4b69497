package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

// Response конверт всех JSON ответов API.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeletedInfo тело ответа на удаление записи или объекта.
type DeletedInfo struct {
	Deleted interface{} `json:"deleted"`
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

func fail(c *gin.Context, status int, code apperror.ErrorCode, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorInfo{Code: string(code), Message: message},
	})
}

func Success(c *gin.Context, data interface{}) {
	ok(c, http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	ok(c, http.StatusCreated, data)
}

// Submitted отвечает на сохранение черновика: 201 для новой записи, 200 для обновления.
func Submitted(c *gin.Context, updated bool, data interface{}) {
	if updated {
		Success(c, data)
		return
	}
	Created(c, data)
}

// Deleted подтверждает удаление. key идентификатор записи или путь объекта.
func Deleted(c *gin.Context, key interface{}) {
	Success(c, DeletedInfo{Deleted: key})
}

// NoContent отвечает 204 без тела, например на счётчик посещений.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error пишет ошибку приложения. Ошибки без кода маскируются как внутренние.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		fail(c, appErr.HTTPStatus, appErr.Code, appErr.Message)
		return
	}
	fail(c, http.StatusInternalServerError, apperror.ErrCodeInternal, "внутренняя ошибка сервера")
}

// ConfirmationRequired 428: удаление не выполнено, клиент должен повторить запрос с confirm=true.
func ConfirmationRequired(c *gin.Context) {
	Error(c, apperror.ErrConfirmationRequired)
}

func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, apperror.ErrCodeBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	fail(c, http.StatusNotFound, apperror.ErrCodeNotFound, message)
}

func Unauthorized(c *gin.Context, message string) {
	fail(c, http.StatusUnauthorized, apperror.ErrCodeUnauthorized, message)
}
