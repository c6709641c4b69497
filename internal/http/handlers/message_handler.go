package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/http/response"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// MessageInbox операции экрана сообщений.
type MessageInbox interface {
	List(ctx context.Context, query string) ([]models.Message, error)
	Open(ctx context.Context, id uuid.UUID) (*models.Message, error)
	Delete(ctx context.Context, id uuid.UUID, confirmed bool) error
	Submit(ctx context.Context, req dto.ContactMessageRequest) (*models.Message, error)
}

// MessageHandler HTTP слой экрана сообщений и контактной формы.
type MessageHandler struct {
	messages MessageInbox
}

// NewMessageHandler создаёт хэндлер.
func NewMessageHandler(messages MessageInbox) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// List обрабатывает GET /api/admin/messages?q=.
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.messages.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}

// Open обрабатывает GET /api/admin/messages/:id и помечает сообщение прочитанным.
func (h *MessageHandler) Open(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg, err := h.messages.Open(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msg)
}

// Delete обрабатывает DELETE /api/admin/messages/:id?confirm=true.
func (h *MessageHandler) Delete(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if !common.Confirmed(c) {
		response.ConfirmationRequired(c)
		return
	}
	if err := h.messages.Delete(c.Request.Context(), id, true); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c, id)
}

// Submit обрабатывает POST /api/messages из контактной формы.
func (h *MessageHandler) Submit(c *gin.Context) {
	var req dto.ContactMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "заполните имя, email, тему и сообщение")
		return
	}

	msg, err := h.messages.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": msg.ID, "created_at": msg.CreatedAt})
}
