package service

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
)

type memoryObjects struct {
	fakeUploader
	deleted []string
}

func (m *memoryObjects) Delete(_ context.Context, bucket, objectPath string) error {
	if objectPath == "" {
		return storage.ErrInvalidPath
	}
	m.deleted = append(m.deleted, bucket+"/"+objectPath)
	return nil
}

func newTestMediaService(store ObjectStore) *MediaService {
	s := NewMediaService(store)
	s.now = fixedNow
	return s
}

func TestMediaService_Upload(t *testing.T) {
	store := &memoryObjects{}
	s := newTestMediaService(store)

	obj, err := s.Upload(context.Background(), models.BucketAvatars, "my photo.png", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "1700000000000-my_photo.png", obj.Path)
	assert.Equal(t, models.BucketAvatars, obj.Bucket)
	assert.NotEmpty(t, obj.URL)
}

func TestMediaService_UnknownBucket(t *testing.T) {
	s := newTestMediaService(&memoryObjects{})

	_, err := s.Upload(context.Background(), "secrets", "a.png", bytes.NewReader(nil))
	assert.True(t, apperror.HasCode(err, apperror.ErrCodeBadRequest))

	err = s.Delete(context.Background(), "../etc", "passwd")
	assert.True(t, apperror.HasCode(err, apperror.ErrCodeBadRequest))
}

func TestMediaService_UploadFailure(t *testing.T) {
	store := &memoryObjects{fakeUploader: fakeUploader{err: storage.ErrUnsupportedType}}
	s := newTestMediaService(store)

	_, err := s.Upload(context.Background(), models.BucketResumes, "cv.exe", io.LimitReader(bytes.NewReader(nil), 0))
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.ErrCodeUploadFailed))
}

func TestMediaService_Delete(t *testing.T) {
	store := &memoryObjects{}
	s := newTestMediaService(store)

	require.NoError(t, s.Delete(context.Background(), models.BucketCompanyLogos, "/1-logo.png"))
	assert.Equal(t, []string{"company-logos/1-logo.png"}, store.deleted)

	err := s.Delete(context.Background(), models.BucketCompanyLogos, "")
	assert.True(t, apperror.HasCode(err, apperror.ErrCodeBadRequest))
}
