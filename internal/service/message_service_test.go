package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
)

type mockMessageStore struct {
	mock.Mock
}

func (m *mockMessageStore) Create(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	if args.Error(0) == nil {
		msg.ID = uuid.New()
		msg.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *mockMessageStore) List(ctx context.Context) ([]models.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *mockMessageStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *mockMessageStore) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMessageStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) BroadcastAll(eventType string, _ interface{}) {
	n.events = append(n.events, eventType)
}

func TestMessageService_OpenMarksUnreadOnce(t *testing.T) {
	repo := new(mockMessageStore)
	svc := NewMessageService(repo, NewQueryCache(time.Minute), nil)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(&models.Message{ID: id, Read: false}, nil)
	repo.On("MarkAsRead", mock.Anything, id).Return(nil)

	msg, err := svc.Open(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, msg.Read)
	repo.AssertNumberOfCalls(t, "MarkAsRead", 1)
}

func TestMessageService_OpenAlreadyReadSkipsWrite(t *testing.T) {
	repo := new(mockMessageStore)
	svc := NewMessageService(repo, NewQueryCache(time.Minute), nil)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(&models.Message{ID: id, Read: true}, nil)

	msg, err := svc.Open(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, msg.Read)
	repo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
}

func TestMessageService_OpenMissing(t *testing.T) {
	repo := new(mockMessageStore)
	svc := NewMessageService(repo, NewQueryCache(time.Minute), nil)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrMessageNotFound)

	_, err := svc.Open(context.Background(), id)
	assert.True(t, apperror.IsNotFound(err))
}

func TestMessageService_ListFiltersCaseInsensitive(t *testing.T) {
	repo := new(mockMessageStore)
	svc := NewMessageService(repo, NewQueryCache(time.Minute), nil)

	repo.On("List", mock.Anything).Return([]models.Message{
		{Name: "Anna", Email: "anna@example.com", Subject: "Заказ сайта", Message: "Нужен лендинг"},
		{Name: "Boris", Email: "boris@example.com", Subject: "Hello", Message: "Question about API"},
		{Name: "Clara", Email: "clara@corp.io", Subject: "Вакансия", Message: "Hi"},
	}, nil).Once()

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byBody, err := svc.List(context.Background(), "api")
	require.NoError(t, err)
	require.Len(t, byBody, 1)
	assert.Equal(t, "Boris", byBody[0].Name)

	bySubject, err := svc.List(context.Background(), "ЗАКАЗ")
	require.NoError(t, err)
	require.Len(t, bySubject, 1)
	assert.Equal(t, "Anna", bySubject[0].Name)

	byEmail, err := svc.List(context.Background(), "corp.io")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)

	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestMessageService_DeleteRequiresConfirmation(t *testing.T) {
	repo := new(mockMessageStore)
	svc := NewMessageService(repo, NewQueryCache(time.Minute), nil)
	id := uuid.New()

	err := svc.Delete(context.Background(), id, false)
	assert.True(t, errors.Is(err, apperror.ErrConfirmationRequired))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	repo.On("Delete", mock.Anything, id).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), id, true))
	repo.AssertNumberOfCalls(t, "Delete", 1)
}

func TestMessageService_SubmitNotifiesAdmins(t *testing.T) {
	repo := new(mockMessageStore)
	notifier := &recordingNotifier{}
	svc := NewMessageService(repo, NewQueryCache(time.Minute), notifier)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Message) bool {
		return m.Email == "guest@example.com" && !m.Read
	})).Return(nil)

	msg, err := svc.Submit(context.Background(), dto.ContactMessageRequest{
		Name:    " Guest ",
		Email:   "Guest@Example.com",
		Subject: "Проект",
		Message: "Здравствуйте",
	})
	require.NoError(t, err)
	assert.Equal(t, "Guest", msg.Name)
	assert.False(t, msg.Read)
	assert.Equal(t, []string{EventMessageReceived}, notifier.events)
}

func TestMessageService_SubmitRejectsBadEmail(t *testing.T) {
	repo := new(mockMessageStore)
	svc := NewMessageService(repo, NewQueryCache(time.Minute), nil)

	_, err := svc.Submit(context.Background(), dto.ContactMessageRequest{
		Name:    "Guest",
		Email:   "not-an-email",
		Subject: "s",
		Message: "m",
	})
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
