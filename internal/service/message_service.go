package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/validation"
)

// EventMessageReceived событие о новом сообщении из контактной формы.
const EventMessageReceived = "message_received"

// MessageStore описывает зависимости MessageService от слоя хранилища.
type MessageStore interface {
	Create(ctx context.Context, msg *models.Message) error
	List(ctx context.Context) ([]models.Message, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Notifier рассылает события подключённым администраторам.
type Notifier interface {
	BroadcastAll(eventType string, data interface{})
}

// MessageService экран входящих сообщений.
type MessageService struct {
	repo     MessageStore
	cache    *QueryCache
	notifier Notifier
}

// NewMessageService создаёт сервис сообщений. notifier может быть nil.
func NewMessageService(repo MessageStore, cache *QueryCache, notifier Notifier) *MessageService {
	return &MessageService{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
	}
}

// List возвращает сообщения, новые первыми, отфильтрованные по подстроке
// в имени, email, теме или тексте без учёта регистра.
func (s *MessageService) List(ctx context.Context, query string) ([]models.Message, error) {
	messages, err := cachedList(ctx, s.cache, models.TableMessages, s.repo.List)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return FilterMessages(messages, query), nil
}

// FilterMessages оставляет сообщения, содержащие query. Пустой запрос ничего не отбрасывает.
func FilterMessages(messages []models.Message, query string) []models.Message {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return messages
	}

	filtered := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Email), q) ||
			strings.Contains(strings.ToLower(m.Subject), q) ||
			strings.Contains(strings.ToLower(m.Message), q) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// Open открывает сообщение. Непрочитанное помечается прочитанным, повторного обновления нет.
func (s *MessageService) Open(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if msg.Read {
		return msg, nil
	}

	if err := s.repo.MarkAsRead(ctx, id); err != nil {
		return nil, mapStoreError(err)
	}
	msg.Read = true
	s.cache.Invalidate(models.TableMessages)
	return msg, nil
}

// Delete удаляет сообщение только после подтверждения.
func (s *MessageService) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return apperror.ErrConfirmationRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}
	s.cache.Invalidate(models.TableMessages)
	return nil
}

// Submit сохраняет сообщение из контактной формы и уведомляет администраторов.
func (s *MessageService) Submit(ctx context.Context, req dto.ContactMessageRequest) (*models.Message, error) {
	if err := validation.ValidateRequired("имя", req.Name, validation.MaxNameLength); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateRequired("тема", req.Subject, validation.MaxSubjectLength); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidateRequired("сообщение", req.Message, validation.MaxMessageLength); err != nil {
		return nil, apperror.Validation(err)
	}

	msg := &models.Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, mapStoreError(err)
	}

	s.cache.Invalidate(models.TableMessages)

	if s.notifier != nil {
		s.notifier.BroadcastAll(EventMessageReceived, map[string]interface{}{
			"id":      msg.ID,
			"name":    msg.Name,
			"subject": msg.Subject,
		})
	}

	logger.Component("messages").WithField("message_id", msg.ID).Info("получено новое сообщение")
	return msg, nil
}
