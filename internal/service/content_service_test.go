package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

type mockStore[T any] struct {
	mock.Mock
}

func (m *mockStore[T]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *mockStore[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockStore[T]) Create(ctx context.Context, fields map[string]any) (*T, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockStore[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type uploadCall struct {
	bucket string
	path   string
	body   string
}

type fakeUploader struct {
	calls []uploadCall
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, bucket, objectPath string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	body, _ := io.ReadAll(r)
	f.calls = append(f.calls, uploadCall{bucket: bucket, path: objectPath, body: string(body)})
	return "/storage/" + bucket + "/" + objectPath, nil
}

func fixedNow() time.Time {
	return time.UnixMilli(1700000000000)
}

func TestContentService_ServiceFormScenario(t *testing.T) {
	store := new(mockStore[models.Service])
	svc := NewServiceContent(store, &fakeUploader{}, NewQueryCache(time.Minute))
	ctx := context.Background()

	store.On("List", mock.Anything).Return([]models.Service{}, nil).Once()
	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	draft := svc.NewDraft()
	draft.Title = "Web Development"
	draft.Description = "Sites"
	draft.IconName = "code"
	draft.Order = 1

	created := &models.Service{ID: uuid.New(), Title: "Web Development", Description: "Sites", IconName: "code", Order: 1}
	store.On("Create", mock.Anything, map[string]any{
		"title":         "Web Development",
		"description":   "Sites",
		"icon_name":     "code",
		"display_order": 1,
	}).Return(created, nil).Once()

	res, err := svc.Submit(ctx, draft, nil)
	require.NoError(t, err)
	assert.Equal(t, created, res.Item)
	assert.Equal(t, &dto.ServiceDraft{}, res.Draft)

	store.On("List", mock.Anything).Return([]models.Service{*created}, nil).Once()
	items, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Web Development", items[0].Title)
	assert.Equal(t, 1, items[0].Order)

	store.AssertNumberOfCalls(t, "List", 2)
	store.AssertNumberOfCalls(t, "Create", 1)
}

func TestContentService_SubmitWithIDUpdates(t *testing.T) {
	store := new(mockStore[models.Skill])
	svc := NewSkillContent(store, &fakeUploader{}, NewQueryCache(time.Minute))
	id := uuid.New()

	draft := &dto.SkillDraft{Name: "Go", Category: "Backend", Proficiency: 90}
	draft.SetID(id)

	updated := &models.Skill{ID: id, Name: "Go", Category: "Backend", Proficiency: 90}
	store.On("Update", mock.Anything, id, mock.AnythingOfType("map[string]interface {}")).Return(updated, nil)

	res, err := svc.Submit(context.Background(), draft, nil)
	require.NoError(t, err)
	assert.Equal(t, updated, res.Item)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContentService_SettingUpdateKeepsKey(t *testing.T) {
	store := new(mockStore[models.SiteSetting])
	svc := NewSettingContent(store, &fakeUploader{}, NewQueryCache(time.Minute))
	id := uuid.New()

	draft := &dto.SettingDraft{Key: "site.title", Value: "Portfolio"}
	draft.SetID(id)

	store.On("Update", mock.Anything, id, map[string]any{"value": "Portfolio", "description": nil}).
		Return(&models.SiteSetting{ID: id, Key: "site.title", Value: "Portfolio"}, nil)

	_, err := svc.Submit(context.Background(), draft, nil)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestContentService_InvalidDraftSkipsStore(t *testing.T) {
	store := new(mockStore[models.Service])
	svc := NewServiceContent(store, &fakeUploader{}, NewQueryCache(time.Minute))

	_, err := svc.Submit(context.Background(), &dto.ServiceDraft{}, nil)
	assert.True(t, apperror.IsValidation(err))
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContentService_UploadFailureAbortsWrite(t *testing.T) {
	store := new(mockStore[models.Project])
	uploader := &fakeUploader{err: errors.New("bucket offline")}
	svc := NewProjectContent(store, uploader, NewQueryCache(time.Minute))

	draft := &dto.ProjectDraft{Title: "Site", Description: "Landing"}
	_, err := svc.Submit(context.Background(), draft, []FileUpload{
		{Field: "image_url", Filename: "cover.png", Content: strings.NewReader("png")},
	})

	assert.True(t, apperror.HasCode(err, apperror.ErrCodeUploadFailed))
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestContentService_UploadAttachesURL(t *testing.T) {
	store := new(mockStore[models.Project])
	uploader := &fakeUploader{}
	svc := NewProjectContent(store, uploader, NewQueryCache(time.Minute))
	svc.now = fixedNow

	store.On("Create", mock.Anything, mock.MatchedBy(func(fields map[string]any) bool {
		return fields["image_url"] == "/storage/project-images/1700000000000-my_cover.png"
	})).Return(&models.Project{ID: uuid.New()}, nil)

	draft := &dto.ProjectDraft{Title: "Site", Description: "Landing"}
	_, err := svc.Submit(context.Background(), draft, []FileUpload{
		{Field: "image_url", Filename: "my cover.png", Content: strings.NewReader("png-bytes")},
	})
	require.NoError(t, err)

	require.Len(t, uploader.calls, 1)
	assert.Equal(t, "project-images", uploader.calls[0].bucket)
	assert.Equal(t, "1700000000000-my_cover.png", uploader.calls[0].path)
	store.AssertExpectations(t)
}

func TestContentService_UploadToUnknownField(t *testing.T) {
	store := new(mockStore[models.Service])
	svc := NewServiceContent(store, &fakeUploader{}, NewQueryCache(time.Minute))

	draft := &dto.ServiceDraft{Title: "t", Description: "d", IconName: "code"}
	_, err := svc.Submit(context.Background(), draft, []FileUpload{{Field: "icon", Filename: "a.png", Content: strings.NewReader("")}})
	assert.True(t, apperror.HasCode(err, apperror.ErrCodeBadRequest))
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContentService_DeleteRequiresConfirmation(t *testing.T) {
	store := new(mockStore[models.Testimonial])
	svc := NewTestimonialContent(store, &fakeUploader{}, NewQueryCache(time.Minute))
	id := uuid.New()

	err := svc.Delete(context.Background(), id, false)
	assert.True(t, errors.Is(err, apperror.ErrConfirmationRequired))
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	store.On("Delete", mock.Anything, id).Return(nil).Once()
	require.NoError(t, svc.Delete(context.Background(), id, true))
	store.AssertNumberOfCalls(t, "Delete", 1)
}

func TestContentService_DeleteInvalidatesCache(t *testing.T) {
	store := new(mockStore[models.Testimonial])
	svc := NewTestimonialContent(store, &fakeUploader{}, NewQueryCache(time.Minute))
	id := uuid.New()

	store.On("List", mock.Anything).Return([]models.Testimonial{{ID: id}}, nil)
	store.On("Delete", mock.Anything, id).Return(nil)

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), id, true))
	_, err = svc.List(context.Background())
	require.NoError(t, err)

	store.AssertNumberOfCalls(t, "List", 2)
}

func TestContentService_ProjectsFeaturedFirst(t *testing.T) {
	store := new(mockStore[models.Project])
	svc := NewProjectContent(store, &fakeUploader{}, NewQueryCache(time.Minute))

	store.On("List", mock.Anything).Return([]models.Project{
		{Title: "b", Order: 1},
		{Title: "a", Order: 2, Featured: true},
		{Title: "c", Order: 0},
	}, nil)

	items, err := svc.List(context.Background())
	require.NoError(t, err)

	titles := []string{items[0].Title, items[1].Title, items[2].Title}
	assert.Equal(t, []string{"a", "c", "b"}, titles)
}

func TestContentService_EditDraftNotFound(t *testing.T) {
	store := new(mockStore[models.Project])
	svc := NewProjectContent(store, &fakeUploader{}, NewQueryCache(time.Minute))
	id := uuid.New()

	store.On("GetByID", mock.Anything, id).Return(nil, common.ErrNotFound)

	_, err := svc.EditDraft(context.Background(), id)
	assert.True(t, apperror.IsNotFound(err))
}

func TestContentService_EditDraftNormalizesTags(t *testing.T) {
	store := new(mockStore[models.Project])
	svc := NewProjectContent(store, &fakeUploader{}, NewQueryCache(time.Minute))
	id := uuid.New()

	store.On("GetByID", mock.Anything, id).Return(&models.Project{ID: id, Title: "Site"}, nil)

	draft, err := svc.EditDraft(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, dto.TagList{}, draft.Technologies)
	assert.Equal(t, id.String(), draft.ID)
}

func TestContentService_ProjectSubmitStoresUniqueTags(t *testing.T) {
	store := new(mockStore[models.Project])
	svc := NewProjectContent(store, &fakeUploader{}, NewQueryCache(time.Minute))

	var stored map[string]any
	store.On("Create", mock.Anything, mock.MatchedBy(func(fields map[string]any) bool {
		stored = fields
		return true
	})).Return(&models.Project{ID: uuid.New(), Title: "Site"}, nil).Once()

	draft := &dto.ProjectDraft{
		Title:        "Site",
		Description:  "Landing",
		Technologies: dto.TagList{"React", "React", " React "},
		Categories:   dto.TagList{"web", "web"},
	}
	_, err := svc.Submit(context.Background(), draft, nil)
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, pq.StringArray{"React"}, stored["technologies"])
	assert.Equal(t, pq.StringArray{"web"}, stored["categories"])
	store.AssertNumberOfCalls(t, "Create", 1)
}

func TestContentService_ListRetriesOnce(t *testing.T) {
	store := new(mockStore[models.Skill])
	svc := NewSkillContent(store, &fakeUploader{}, NewQueryCache(time.Minute))

	store.On("List", mock.Anything).Return(nil, errors.New("timeout")).Once()
	store.On("List", mock.Anything).Return([]models.Skill{{Name: "Go"}}, nil).Once()

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	store.AssertNumberOfCalls(t, "List", 2)
}
